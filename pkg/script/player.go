package script

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// Player replays scripts against an engine and its viewport pair.
type Player struct {
	eng  *interaction.Engine
	view viewport.Name
	last geometry.Point
}

// NewPlayer returns a player driving eng.
func NewPlayer(eng *interaction.Engine) *Player {
	return &Player{eng: eng, view: viewport.Original}
}

// Play parses src and runs it against eng.
func Play(eng *interaction.Engine, src string) error {
	p, err := NewParser()
	if err != nil {
		return err
	}
	s, err := p.ParseString(src)
	if err != nil {
		return err
	}
	return NewPlayer(eng).Run(s)
}

// Run executes every statement in order and stops at the first error.
func (p *Player) Run(s *Script) error {
	for _, st := range s.Statements {
		if err := p.exec(st); err != nil {
			return fmt.Errorf("line %d: %w", st.Pos.Line, err)
		}
	}
	return nil
}

func (p *Player) exec(st *Statement) error {
	switch {
	case st.Sync != nil:
		p.eng.Pair().SetSync(st.Sync.State == "on")
	case st.Tool != nil:
		tool, err := interaction.ParseTool(st.Tool.Name)
		if err != nil {
			return err
		}
		p.eng.SetTool(tool)
	case st.Zoom != nil:
		return p.zoom(st.Zoom)
	case st.Fit != nil:
		ctrl, err := p.controller(st.Fit.View)
		if err != nil {
			return err
		}
		ctrl.FitToScreen(geometry.Sz(st.Fit.Size.X, st.Fit.Size.Y), p.eng.ImageSize())
	case st.Pan != nil:
		ctrl, err := p.controller(st.Pan.View)
		if err != nil {
			return err
		}
		ctrl.StartDrag(point(st.Pan.From))
		ctrl.Drag(point(st.Pan.To))
		ctrl.EndDrag()
	case st.Down != nil:
		name, err := viewport.ParseName(st.Down.View)
		if err != nil {
			return err
		}
		mods, err := modifiers(st.Down.Mods)
		if err != nil {
			return err
		}
		p.view, p.last = name, point(st.Down.At)
		p.eng.PointerDown(interaction.PointerEvent{Viewport: p.view, Screen: p.last, Modifiers: mods})
	case st.Move != nil:
		mods, err := modifiers(st.Move.Mods)
		if err != nil {
			return err
		}
		p.last = point(st.Move.At)
		p.eng.PointerMove(interaction.PointerEvent{Viewport: p.view, Screen: p.last, Modifiers: mods})
	case st.Up != nil:
		mods, err := modifiers(st.Up.Mods)
		if err != nil {
			return err
		}
		if st.Up.At != nil {
			p.last = point(st.Up.At)
		}
		p.eng.PointerUp(interaction.PointerEvent{Viewport: p.view, Screen: p.last, Modifiers: mods})
	}
	return nil
}

func (p *Player) zoom(z *ZoomStmt) error {
	ctrl, err := p.controller(z.View)
	if err != nil {
		return err
	}
	switch {
	case z.At != nil:
		ctrl.ZoomAt(z.At.X, z.At.Y, z.Factor)
	case z.Action == "in":
		ctrl.ZoomIn()
	case z.Action == "out":
		ctrl.ZoomOut()
	case z.Action == "reset":
		ctrl.ResetZoom()
	}
	return nil
}

func (p *Player) controller(view string) (*viewport.Controller, error) {
	name, err := viewport.ParseName(view)
	if err != nil {
		return nil, err
	}
	return p.eng.Pair().Get(name), nil
}

func point(c *Coord) geometry.Point {
	return geometry.Pt(c.X, c.Y)
}

func modifiers(m *Mods) (interaction.Modifiers, error) {
	var out interaction.Modifiers
	if m == nil {
		return out, nil
	}
	for _, name := range m.Names {
		mod, err := interaction.ParseModifier(strings.TrimSpace(name))
		if err != nil {
			return 0, err
		}
		out |= mod
	}
	return out, nil
}
