// Package overlay computes the screen-space decoration of every bubble in a
// viewport from the bubble list, the shared interaction state and the
// selection, and hit-tests pointer positions against it.
package overlay

import (
	"fmt"

	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/selection"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// Config holds the screen-fixed sizes of overlay decorations, in pixels.
type Config struct {
	HandleSize   float64 // Side of a resize handle square (default: 8)
	RotateOffset float64 // Distance of the rotate handle above the top edge (default: 24)
	RotateRadius float64 // Radius of the rotate handle (default: 5)
	BorderWidth  float64 // Bubble outline width (default: 2)
	HitSlop      float64 // Extra pick tolerance around handles (default: 3)
}

// DefaultConfig returns the standard overlay sizes.
func DefaultConfig() Config {
	return Config{
		HandleSize:   8,
		RotateOffset: 24,
		RotateRadius: 5,
		BorderWidth:  2,
		HitSlop:      3,
	}
}

// Validate fills unset sizes with defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.HandleSize < 0 || c.RotateOffset < 0 || c.RotateRadius < 0 || c.BorderWidth < 0 || c.HitSlop < 0 {
		return fmt.Errorf("overlay: negative size in %+v", *c)
	}
	if c.HandleSize == 0 {
		c.HandleSize = def.HandleSize
	}
	if c.RotateOffset == 0 {
		c.RotateOffset = def.RotateOffset
	}
	if c.RotateRadius == 0 {
		c.RotateRadius = def.RotateRadius
	}
	if c.BorderWidth == 0 {
		c.BorderWidth = def.BorderWidth
	}
	return nil
}

// Kind is how a bubble is highlighted.
type Kind uint8

const (
	KindPlain   Kind = iota
	KindMulti        // in the multi-selection but not primary
	KindPrimary      // primary selection, shows handles
)

func (k Kind) String() string {
	switch k {
	case KindMulti:
		return "multi"
	case KindPrimary:
		return "primary"
	}
	return "plain"
}

// HandleMark is a resize handle square in screen coordinates.
type HandleMark struct {
	Handle geometry.Handle
	Center geometry.Point
	Box    geometry.Rect
}

// Style is the screen-space decoration of one bubble.
type Style struct {
	Index int
	Kind  Kind
	// Live is set while the bubble is the subject of a gesture.
	Live bool

	// Box is the unrotated rectangle and Angle its rotation about the
	// center; Corners are the rotated corners in nw, ne, se, sw order.
	Box     geometry.Rect
	Angle   float64
	Corners [4]geometry.Point

	// Primary selection only.
	Handles   []HandleMark
	Rotate    geometry.Point
	Connector [2]geometry.Point
}

// Selected reports whether the style carries handles.
func (s Style) Selected() bool { return s.Kind == KindPrimary }

// Frame is everything drawn over one viewport for one state version.
type Frame struct {
	Viewport  viewport.Name
	Transform viewport.Transform
	Styles    []Style
	// Draft is the box being drawn, in screen coordinates.
	Draft *geometry.Rect
}

// Compute derives the frame for one viewport. Bubbles under an active
// gesture take their geometry from the live fields of current.
func Compute(bubbles []bubble.Bubble, current interaction.Interaction, sel *selection.Model, t viewport.Transform, cfg Config) Frame {
	frame := Frame{Transform: t, Styles: make([]Style, 0, len(bubbles))}
	if current == nil {
		current = interaction.Idle{}
	}
	subject := current.Subject()
	primary := -1
	if sel != nil {
		primary = sel.Selected()
	}

	for i, b := range bubbles {
		rect, angle := b.Coords, b.RotationAngle
		live := i == subject
		if live {
			switch in := current.(type) {
			case interaction.Dragging:
				rect = in.Live()
			case interaction.Resizing:
				rect = in.Live
			case interaction.Rotating:
				angle = in.Angle
			}
		}

		st := Style{
			Index: i,
			Live:  live,
			Box:   t.RectToScreen(rect),
			Angle: angle,
		}
		for k, c := range geometry.RotatedCorners(rect, angle) {
			st.Corners[k] = t.ToScreenSpace(c)
		}
		switch {
		case i == primary:
			st.Kind = KindPrimary
			decorate(&st, rect, angle, t, cfg)
		case sel != nil && sel.Contains(i):
			st.Kind = KindMulti
		}
		frame.Styles = append(frame.Styles, st)
	}

	if d, ok := current.(interaction.DrawingBox); ok {
		draft := t.RectToScreen(d.Live)
		frame.Draft = &draft
	}
	return frame
}

// decorate places the handles of the primary bubble. Sizes are converted to
// image units first so the transform scales them back to exact pixels.
func decorate(st *Style, rect geometry.Rect, angle float64, t viewport.Transform, cfg Config) {
	c := rect.Center()
	half := t.ImageLength(cfg.HandleSize / 2)
	w, h := rect.Width(), rect.Height()

	st.Handles = make([]HandleMark, 0, len(geometry.Handles))
	for _, hd := range geometry.Handles {
		a := hd.Anchor()
		p := geometry.RotateAbout(geometry.Pt(rect.X1+a.X*w, rect.Y1+a.Y*h), c, angle)
		box := geometry.R(p.X-half, p.Y-half, p.X+half, p.Y+half)
		st.Handles = append(st.Handles, HandleMark{
			Handle: hd,
			Center: t.ToScreenSpace(p),
			Box:    t.RectToScreen(box),
		})
	}

	top := geometry.Pt(c.X, rect.Y1)
	knob := geometry.Pt(c.X, rect.Y1-t.ImageLength(cfg.RotateOffset))
	st.Connector = [2]geometry.Point{
		t.ToScreenSpace(geometry.RotateAbout(top, c, angle)),
		t.ToScreenSpace(geometry.RotateAbout(knob, c, angle)),
	}
	st.Rotate = st.Connector[1]
}

// HitTest finds what lies under a screen position: resize handles of the
// primary bubble first, then its rotate handle, then bubble bodies from the
// top-most (last drawn) down.
func HitTest(frame Frame, p geometry.Point, cfg Config) interaction.Target {
	for _, st := range frame.Styles {
		if !st.Selected() {
			continue
		}
		for _, hm := range st.Handles {
			if hm.Box.Inset(-cfg.HitSlop).Contains(p) {
				return interaction.Target{Kind: interaction.TargetHandle, Index: st.Index, Handle: hm.Handle}
			}
		}
		if geometry.Distance(st.Rotate, p) <= cfg.RotateRadius+cfg.HitSlop {
			return interaction.Target{Kind: interaction.TargetRotate, Index: st.Index}
		}
	}
	for i := len(frame.Styles) - 1; i >= 0; i-- {
		st := frame.Styles[i]
		if geometry.ContainsRotated(st.Box, st.Angle, p) {
			return interaction.Target{Kind: interaction.TargetBody, Index: st.Index}
		}
	}
	return interaction.Target{}
}
