package overlay

import (
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/selection"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// Renderer binds the sources of one editing session so both viewports can
// compute their frames from the same shared state.
type Renderer struct {
	doc   interaction.Document
	state *interaction.State
	sel   *selection.Model
	pair  *viewport.Pair
	cfg   Config
}

// NewRenderer creates a renderer. It only reads from its sources.
func NewRenderer(doc interaction.Document, state *interaction.State, sel *selection.Model, pair *viewport.Pair, cfg Config) *Renderer {
	if err := cfg.Validate(); err != nil {
		cfg = DefaultConfig()
	}
	return &Renderer{doc: doc, state: state, sel: sel, pair: pair, cfg: cfg}
}

// Config returns the overlay sizes.
func (r *Renderer) Config() Config { return r.cfg }

// Render computes the current frame for the named viewport.
func (r *Renderer) Render(name viewport.Name) Frame {
	t := viewport.Identity()
	if c := r.pair.Get(name); c != nil {
		t = c.Transform()
	}
	frame := Compute(r.doc.Bubbles(), r.state.Current(), r.sel, t, r.cfg)
	frame.Viewport = name
	return frame
}

// Pick implements interaction.Picker.
func (r *Renderer) Pick(name viewport.Name, screen geometry.Point) interaction.Target {
	return HitTest(r.Render(name), screen, r.cfg)
}
