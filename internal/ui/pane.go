package ui

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/bubbleproof/internal/session"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
	"github.com/OpenTraceLab/bubbleproof/pkg/overlay"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

var (
	paneBg       = color.NRGBA{R: 58, G: 62, B: 74, A: 255}
	plainColor   = color.NRGBA{R: 0, G: 160, B: 220, A: 255}
	multiColor   = color.NRGBA{R: 255, G: 170, B: 0, A: 255}
	primaryColor = color.NRGBA{R: 255, G: 64, B: 96, A: 255}
	primaryFill  = color.NRGBA{R: 255, G: 64, B: 96, A: 40}
	handleFill   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	draftColor   = color.NRGBA{R: 40, G: 200, B: 120, A: 255}
)

// pane is one viewport of the comparison view. The pane itself is the
// event tag for its input area.
type pane struct {
	name  viewport.Name
	title string

	img    paint.ImageOp
	hasImg bool
	fitted bool
	size   image.Point

	// tracking is set while this pane holds the pointer grab.
	tracking bool
	pointer  pointer.ID
}

func newPane(name viewport.Name, title string) *pane {
	return &pane{name: name, title: title}
}

// reset drops per-page state after a new session is installed.
func (p *pane) reset(s *session.Session) {
	p.fitted = false
	p.tracking = false
	p.hasImg = false
	if s != nil && s.Image != nil {
		p.img = paint.NewImageOp(s.Image)
		p.img.Filter = paint.FilterLinear
		p.hasImg = true
	}
}

func (p *pane) viewSize() geometry.Size {
	return geometry.Sz(float64(p.size.X), float64(p.size.Y))
}

func (p *pane) Layout(gtx layout.Context, a *App) layout.Dimensions {
	size := gtx.Constraints.Max
	p.size = size
	s := a.sess

	if s != nil && !p.fitted && size.X > 0 && size.Y > 0 {
		s.Fit(p.name, p.viewSize())
		p.fitted = true
	}
	if s != nil {
		p.handlePointer(gtx, a, s)
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, paneBg, clip.Rect{Max: size}.Op())

	if s != nil {
		p.drawImage(gtx, s.Pair.Get(p.name).Transform())
		drawFrame(gtx.Ops, s.Frame(p.name), s.Renderer.Config())
	}

	// Input layer
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	if s != nil && s.Engine.Tool() == interaction.ToolDraw {
		pointer.CursorCrosshair.Add(gtx.Ops)
	}
	event.Op(gtx.Ops, p)
	area.Pop()

	layout.Inset{Top: unit.Dp(6), Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Caption(a.Theme, p.title)
		lbl.Color = color.NRGBA{R: 230, G: 232, B: 240, A: 200}
		if a.active == p {
			lbl.Color.A = 255
		}
		return lbl.Layout(gtx)
	})
	return layout.Dimensions{Size: size}
}

// handlePointer feeds pointer events to the engine. A press grabs the
// pointer so drags and the release arrive here even outside the pane.
func (p *pane) handlePointer(gtx layout.Context, a *App, s *session.Session) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  p,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		pev, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		in := interaction.PointerEvent{
			Viewport:  p.name,
			Screen:    toPoint(pev.Position),
			Modifiers: modifiers(pev.Modifiers),
		}
		switch pev.Kind {
		case pointer.Press:
			if pev.Buttons != pointer.ButtonPrimary {
				continue
			}
			a.active = p
			if s.Engine.PointerDown(in) {
				p.tracking = true
				p.pointer = pev.PointerID
				gtx.Execute(pointer.GrabCmd{Tag: p, ID: pev.PointerID})
			}
			gtx.Execute(key.FocusCmd{Tag: nil})
		case pointer.Drag:
			if p.tracking && pev.PointerID == p.pointer {
				s.Engine.PointerMove(in)
			}
		case pointer.Release, pointer.Cancel:
			if p.tracking && (pev.Kind == pointer.Cancel || pev.PointerID == p.pointer) {
				p.tracking = false
				s.Engine.PointerUp(in)
			}
		case pointer.Scroll:
			f := wheelZoom(pev.Scroll.Y, s.Pair.Get(p.name).Config().WheelFactor)
			if f != 1 {
				s.Pair.Get(p.name).ZoomAt(in.Screen.X, in.Screen.Y, f)
			}
		}
		a.invalidate()
	}
}

func (p *pane) drawImage(gtx layout.Context, t viewport.Transform) {
	if !p.hasImg {
		return
	}
	s := float32(t.Scale)
	defer op.Affine(f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(s, s)).
		Offset(toF32(t.Translate()))).Push(gtx.Ops).Pop()
	p.img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// drawFrame paints the overlay in screen space, so outlines and handles
// keep their pixel size at any zoom.
func drawFrame(ops *op.Ops, frame overlay.Frame, cfg overlay.Config) {
	width := float32(cfg.BorderWidth)
	for _, st := range frame.Styles {
		col := plainColor
		switch st.Kind {
		case overlay.KindMulti:
			col = multiColor
		case overlay.KindPrimary:
			col = primaryColor
			fillPolygon(ops, st.Corners[:], primaryFill)
		}
		if st.Live {
			col.A = 200
		}
		strokePolygon(ops, st.Corners[:], width, col)

		if !st.Selected() {
			continue
		}
		strokeLine(ops, st.Connector[0], st.Connector[1], 1, col)
		r := cfg.RotateRadius
		knob := image.Rect(
			int(st.Rotate.X-r), int(st.Rotate.Y-r),
			int(st.Rotate.X+r+0.5), int(st.Rotate.Y+r+0.5),
		)
		paint.FillShape(ops, handleFill, clip.Ellipse(knob).Op(ops))
		paint.FillShape(ops, col, clip.Stroke{Path: clip.Ellipse(knob).Path(ops), Width: 1}.Op())
		for _, h := range st.Handles {
			box := h.Box
			pts := []geometry.Point{box.Min(), geometry.Pt(box.X2, box.Y1), box.Max(), geometry.Pt(box.X1, box.Y2)}
			fillPolygon(ops, pts, handleFill)
			strokePolygon(ops, pts, 1, col)
		}
	}
	if frame.Draft != nil {
		d := *frame.Draft
		pts := []geometry.Point{d.Min(), geometry.Pt(d.X2, d.Y1), d.Max(), geometry.Pt(d.X1, d.Y2)}
		strokePolygon(ops, pts, width, draftColor)
	}
}

func polygonPath(ops *op.Ops, pts []geometry.Point) clip.PathSpec {
	var path clip.Path
	path.Begin(ops)
	path.MoveTo(toF32(pts[0]))
	for _, pt := range pts[1:] {
		path.LineTo(toF32(pt))
	}
	path.Close()
	return path.End()
}

func strokePolygon(ops *op.Ops, pts []geometry.Point, width float32, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	paint.FillShape(ops, col, clip.Stroke{Path: polygonPath(ops, pts), Width: width}.Op())
}

func fillPolygon(ops *op.Ops, pts []geometry.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	paint.FillShape(ops, col, clip.Outline{Path: polygonPath(ops, pts)}.Op())
}

func strokeLine(ops *op.Ops, from, to geometry.Point, width float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(ops)
	path.MoveTo(toF32(from))
	path.LineTo(toF32(to))
	paint.FillShape(ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}
