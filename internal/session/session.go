// Package session wires a page document to the editing core: selection,
// interaction state, the viewport pair, the overlay renderer and the
// pointer engine. The desktop UI and the CLI both edit through a Session.
package session

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"

	"github.com/OpenTraceLab/bubbleproof/internal/document"
	"github.com/OpenTraceLab/bubbleproof/internal/imageio"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/overlay"
	"github.com/OpenTraceLab/bubbleproof/pkg/selection"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// Options configures a session.
type Options struct {
	Viewport viewport.Config
	Engine   interaction.Config
	Overlay  overlay.Config

	Sync bool
	Tool interaction.Tool
}

// DefaultOptions returns the standard configuration with sync enabled.
func DefaultOptions() Options {
	return Options{
		Viewport: viewport.DefaultConfig(),
		Engine:   interaction.DefaultConfig(),
		Overlay:  overlay.DefaultConfig(),
		Sync:     true,
	}
}

// Session is one open page and everything editing it.
type Session struct {
	Doc      *document.Document
	Sel      *selection.Model
	State    *interaction.State
	Pair     *viewport.Pair
	Renderer *overlay.Renderer
	Engine   *interaction.Engine

	// Image is the decoded page image, or a blank canvas.
	Image image.Image
}

// New builds a session around doc. Finalized edits are applied to doc and
// then passed to every extra handler in order.
//
// Deletions and replacements update the selection and any running gesture
// from inside the document call. The selection model and engine are not
// locked, so doc must only be mutated on the goroutine that drives the
// engine; background producers hand results to that goroutine first.
func New(doc *document.Document, opts Options, handlers ...interaction.Handler) (*Session, error) {
	if doc == nil {
		doc = document.New()
	}
	if err := opts.Viewport.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := opts.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := opts.Overlay.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		Doc:   doc,
		Sel:   selection.New(),
		State: interaction.NewState(),
		Pair:  viewport.NewPair(opts.Viewport),
	}
	s.Pair.SetSync(opts.Sync)
	s.Renderer = overlay.NewRenderer(doc, s.State, s.Sel, s.Pair, opts.Overlay)

	chain := append([]interaction.Handler{doc}, handlers...)
	s.Engine = interaction.NewEngine(s.State, s.Sel, s.Pair, doc, interaction.Tee(chain...), s.Renderer, opts.Engine)
	s.Engine.SetTool(opts.Tool)

	doc.OnEdit(func(c document.Change) {
		switch c.Kind {
		case document.ChangeDelete:
			s.Engine.BubbleRemoved(c.Index)
		case document.ChangeReplace:
			s.Engine.BubblesReplaced(doc.Len())
		}
	})
	return s, nil
}

// Open loads the page at path and its image.
func Open(path string, opts Options, handlers ...interaction.Handler) (*Session, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := New(doc, opts, handlers...)
	if err != nil {
		return nil, err
	}
	s.LoadImage()
	return s, nil
}

// ImagePath resolves the page image relative to the page file.
func (s *Session) ImagePath() string {
	name := s.Doc.Image()
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	if p := s.Doc.Path(); p != "" {
		return filepath.Join(filepath.Dir(p), name)
	}
	return name
}

// LoadImage decodes the page image. A missing or unreadable image leaves a
// blank canvas of the page size so editing still works.
func (s *Session) LoadImage() {
	path := s.ImagePath()
	if path != "" {
		img, err := imageio.Open(path)
		if err == nil {
			s.Image = img
			if s.Doc.ImageSize().Empty() {
				w, h := imageio.Size(img)
				s.Doc.SetImageSize(w, h)
			}
			interaction.Logger().Info("session: image loaded", "path", path, "size", s.Doc.ImageSize())
			return
		}
		interaction.Logger().Warn("session: image unavailable, using blank page", "err", err)
	}
	size := s.Engine.ImageSize()
	s.Image = imageio.Blank(int(size.Width), int(size.Height))
}

// Fit fits the named viewport to its pane. With sync on the other pane
// follows.
func (s *Session) Fit(name viewport.Name, view geometry.Size) {
	if c := s.Pair.Get(name); c != nil {
		c.FitToScreen(view, s.Engine.ImageSize())
	}
}

// DeleteSelected removes every selected bubble and clears the selection.
// It returns the number of bubbles removed.
func (s *Session) DeleteSelected() (int, error) {
	idx := s.Sel.Indices()
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	s.Engine.ClearSelection()

	removed := 0
	for _, i := range idx {
		if err := s.Doc.Delete(i); err != nil {
			return removed, fmt.Errorf("session: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Frame computes the overlay of the named viewport.
func (s *Session) Frame(name viewport.Name) overlay.Frame {
	return s.Renderer.Render(name)
}
