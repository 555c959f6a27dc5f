package interaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/selection"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// Modifiers is a bit set of keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Snap reports whether rotation snapping is requested.
func (m Modifiers) Snap() bool { return m&ModShift != 0 }

// Multi reports whether a click should toggle multi-selection.
func (m Modifiers) Multi() bool { return m&(ModCtrl|ModMeta) != 0 }

func (m Modifiers) String() string {
	var names []string
	for _, mod := range []struct {
		m    Modifiers
		name string
	}{{ModShift, "shift"}, {ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModMeta, "meta"}} {
		if m&mod.m != 0 {
			names = append(names, mod.name)
		}
	}
	return strings.Join(names, "+")
}

// ParseModifier converts a modifier name (shift, ctrl, alt, meta).
func ParseModifier(name string) (Modifiers, error) {
	switch strings.ToLower(name) {
	case "shift":
		return ModShift, nil
	case "ctrl", "control":
		return ModCtrl, nil
	case "alt", "option":
		return ModAlt, nil
	case "meta", "cmd", "super":
		return ModMeta, nil
	}
	return 0, fmt.Errorf("interaction: unknown modifier %q", name)
}

// Tool selects what a press on empty space does.
type Tool uint8

const (
	ToolSelect Tool = iota // pan the pressed viewport
	ToolDraw               // draw a new bubble
)

func (t Tool) String() string {
	if t == ToolDraw {
		return "draw"
	}
	return "select"
}

// ParseTool converts a tool name.
func ParseTool(name string) (Tool, error) {
	switch name {
	case "select":
		return ToolSelect, nil
	case "draw":
		return ToolDraw, nil
	}
	return 0, fmt.Errorf("interaction: unknown tool %q", name)
}

// PointerEvent is a host pointer event in the screen space of a viewport.
type PointerEvent struct {
	Viewport  viewport.Name
	Screen    geometry.Point
	Modifiers Modifiers
}

// Engine turns pointer events from either viewport into selection changes,
// live geometry in the shared State and finalized edits on the Handler.
type Engine struct {
	state   *State
	sel     *selection.Model
	pair    *viewport.Pair
	doc     Document
	handler Handler
	picker  Picker
	cfg     Config
	tool    Tool

	// pan is the controller being panned by a background press.
	pan *viewport.Controller

	listeners []func()
}

// NewEngine wires an engine to its collaborators. A nil handler discards
// events; a nil picker treats every press as landing on empty space.
func NewEngine(state *State, sel *selection.Model, pair *viewport.Pair, doc Document, h Handler, picker Picker, cfg Config) *Engine {
	if err := cfg.Validate(); err != nil {
		Logger().Warn("interaction: invalid config, using defaults", "err", err)
		cfg = DefaultConfig()
	}
	if h == nil {
		h = Funcs{}
	}
	return &Engine{
		state:   state,
		sel:     sel,
		pair:    pair,
		doc:     doc,
		handler: h,
		picker:  picker,
		cfg:     cfg,
	}
}

// State returns the shared interaction state.
func (e *Engine) State() *State { return e.state }

// Selection returns the selection model.
func (e *Engine) Selection() *selection.Model { return e.sel }

// Pair returns the viewport pair.
func (e *Engine) Pair() *viewport.Pair { return e.pair }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Tool returns the active tool.
func (e *Engine) Tool() Tool { return e.tool }

// SetTool switches the tool used for presses on empty space.
func (e *Engine) SetTool(t Tool) { e.tool = t }

// SetPicker replaces the hit-tester.
func (e *Engine) SetPicker(p Picker) { e.picker = p }

// OnChange registers fn to run after every event that changed the state or
// selection, so hosts can schedule a redraw.
func (e *Engine) OnChange(fn func()) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

func (e *Engine) changed() {
	for _, fn := range e.listeners {
		fn()
	}
}

// ClearSelection drops the selection and reports it as OnSelect(-1).
func (e *Engine) ClearSelection() {
	if e.sel.Selected() < 0 && e.sel.Len() == 0 {
		return
	}
	e.sel.Clear()
	e.handler.OnSelect(-1)
	e.changed()
}

// BubbleRemoved keeps the selection and a running gesture in step with the
// deletion of the bubble at index. A gesture on that bubble ends without a
// commit; a gesture on a later bubble follows it to its new index.
func (e *Engine) BubbleRemoved(index int) {
	e.sel.Remove(index)
	if subject := e.state.Current().Subject(); e.state.Active() && subject >= 0 {
		switch {
		case subject == index:
			Logger().Info("interaction: subject deleted, gesture dropped", "mode", e.state.Mode(), "index", index)
			e.state.reset()
		case subject > index:
			e.state.update(withSubject(e.state.Current(), subject-1))
		}
	}
	e.changed()
}

// BubblesReplaced reacts to the whole bubble list being swapped for count
// new bubbles. Indices no longer name the same bubbles, so a gesture on a
// bubble ends without a commit. A draft box survives.
func (e *Engine) BubblesReplaced(count int) {
	e.sel.Prune(count)
	if e.state.Active() && e.state.Current().Subject() >= 0 {
		Logger().Info("interaction: bubbles replaced, gesture dropped", "mode", e.state.Mode())
		e.state.reset()
	}
	e.changed()
}

// PointerDown starts a gesture. It returns true when the host should keep
// delivering move and up events for this pointer (a gesture or a pan began).
func (e *Engine) PointerDown(ev PointerEvent) bool {
	ctrl := e.pair.Get(ev.Viewport)
	if ctrl == nil {
		Logger().Warn("interaction: pointer down on unknown viewport", "viewport", ev.Viewport)
		return false
	}
	if !ev.Screen.Finite() {
		return false
	}
	if e.state.Active() || e.state.ActiveListeners() > 0 {
		Logger().Warn("interaction: clearing stale interaction",
			"mode", e.state.Mode(), "listeners", e.state.ActiveListeners())
		e.state.reset()
	}
	e.endPan()

	t := ctrl.Transform()
	img := t.ToImageSpace(ev.Screen)
	bubbles := e.doc.Bubbles()

	var target Target
	if e.picker != nil {
		target = e.picker.Pick(ev.Viewport, ev.Screen)
	}
	if target.Kind != TargetNone && (target.Index < 0 || target.Index >= len(bubbles)) {
		target = Target{}
	}

	var in Interaction
	switch target.Kind {
	case TargetHandle:
		b := bubbles[target.Index]
		in = Resizing{
			Index:      target.Index,
			Handle:     target.Handle,
			StartImage: img,
			Start:      b.Coords,
			Live:       b.Coords,
		}
	case TargetRotate:
		b := bubbles[target.Index]
		center := t.ToScreenSpace(b.Center())
		in = Rotating{
			Index:             target.Index,
			Center:            center,
			StartPointerAngle: geometry.PointerAngle(center, ev.Screen),
			StartRotation:     b.RotationAngle,
			Angle:             b.RotationAngle,
		}
	case TargetBody:
		i := target.Index
		switch {
		case ev.Modifiers.Multi():
			e.sel.Toggle(i)
			e.handler.OnMultiSelect(i)
			e.changed()
			return false
		case i != e.sel.Selected():
			e.sel.Select(i)
			e.handler.OnSelect(i)
			e.changed()
			return false
		}
		in = Dragging{Index: i, StartImage: img, Origin: bubbles[i].Coords}
	default:
		if e.tool != ToolDraw {
			ctrl.StartDrag(ev.Screen)
			e.pan = ctrl
			return true
		}
		in = DrawingBox{StartImage: img, Live: geometry.Span(img, img)}
	}

	if err := e.state.begin(in, ev.Viewport); err != nil {
		Logger().Warn("interaction: begin failed", "mode", in.Mode(), "err", err)
		return false
	}
	Logger().Debug("interaction: begin", "mode", in.Mode(), "index", in.Subject(), "viewport", ev.Viewport)
	e.changed()
	return true
}

// PointerMove updates the live geometry of the active gesture. Positions
// are interpreted in the viewport the gesture started in.
func (e *Engine) PointerMove(ev PointerEvent) {
	if e.pan != nil {
		e.pan.Drag(ev.Screen)
		return
	}
	if !e.state.listening(listenMove) || !ev.Screen.Finite() {
		return
	}
	ctrl := e.pair.Get(e.state.Origin())
	if ctrl == nil {
		return
	}
	img := ctrl.Transform().ToImageSpace(ev.Screen)

	switch in := e.state.Current().(type) {
	case Dragging:
		in.Offset = geometry.DragDelta(in.StartImage, img)
		e.state.update(in)
	case Resizing:
		live, ok := geometry.Resize(in.Start, in.Handle, geometry.DragDelta(in.StartImage, img), e.cfg.MinSize)
		if !ok {
			return
		}
		in.Live = live
		e.state.update(in)
	case Rotating:
		current := geometry.PointerAngle(in.Center, ev.Screen)
		in.Angle = geometry.RotateLive(in.StartRotation, in.StartPointerAngle, current, ev.Modifiers.Snap(), e.cfg.SnapDegrees)
		e.state.update(in)
	case DrawingBox:
		in.Live = geometry.DrawLive(in.StartImage, img)
		e.state.update(in)
	default:
		return
	}
	e.changed()
}

// PointerUp commits the active gesture, returns the state to Idle and
// emits at most one finalized event.
func (e *Engine) PointerUp(ev PointerEvent) {
	if e.pan != nil {
		e.endPan()
		return
	}
	if !e.state.listening(listenUp) {
		return
	}
	in := e.state.Current()
	e.state.reset()
	e.commit(in)
	e.changed()
}

func (e *Engine) endPan() {
	if e.pan != nil {
		e.pan.EndDrag()
		e.pan = nil
	}
}

// ImageSize returns the document image size, or the configured default
// while it is unknown.
func (e *Engine) ImageSize() geometry.Size {
	if s := e.doc.ImageSize(); !s.Empty() {
		return s
	}
	return e.cfg.DefaultImageSize
}

func (e *Engine) commit(in Interaction) {
	bubbles := e.doc.Bubbles()
	bounds := e.ImageSize()
	idx := in.Subject()
	if in.Mode() != ModeDrawingBox && (idx < 0 || idx >= len(bubbles)) {
		Logger().Debug("interaction: subject vanished, nothing to commit", "mode", in.Mode(), "index", idx)
		return
	}

	switch in := in.(type) {
	case Dragging:
		if bubbles[idx].Coords != in.Origin {
			Logger().Debug("interaction: subject changed, drag dropped", "index", idx)
			return
		}
		coords := geometry.CommitDrag(in.Live(), bounds)
		if coords == bubbles[idx].Coords {
			// A click without movement collapses a multi-selection.
			if e.sel.Len() > 1 {
				e.sel.Select(idx)
				e.handler.OnSelect(idx)
			}
			return
		}
		Logger().Info("interaction: drag", "index", idx, "coords", coords)
		e.handler.OnDragEnd(idx, coords)
	case Resizing:
		if bubbles[idx].Coords != in.Start {
			Logger().Debug("interaction: subject changed, resize dropped", "index", idx)
			return
		}
		coords, err := geometry.CommitResize(in.Live, bounds, e.cfg.MinSize)
		if errors.Is(err, geometry.ErrTooSmall) {
			Logger().Warn("interaction: resize discarded", "index", idx, "live", in.Live, "err", err)
			e.hint(fmt.Sprintf("bubble must be at least %gx%g", e.cfg.MinSize, e.cfg.MinSize))
			return
		}
		if coords == bubbles[idx].Coords {
			return
		}
		Logger().Info("interaction: resize", "index", idx, "handle", in.Handle, "coords", coords)
		e.handler.OnResizeEnd(idx, coords)
	case Rotating:
		if bubbles[idx].RotationAngle != in.StartRotation {
			Logger().Debug("interaction: subject changed, rotation dropped", "index", idx)
			return
		}
		angle := geometry.NormalizeAngle(in.Angle)
		if angle == bubbles[idx].RotationAngle {
			return
		}
		Logger().Info("interaction: rotate", "index", idx, "angle", angle)
		e.handler.OnRotateEnd(idx, angle)
	case DrawingBox:
		coords, ok := geometry.CommitDraw(in.Live, bounds, e.cfg.MinSize)
		if !ok {
			Logger().Debug("interaction: draft box too small", "live", in.Live)
			return
		}
		Logger().Info("interaction: draw", "coords", coords)
		e.handler.OnDrawBubble(coords)
	}
}

func (e *Engine) hint(msg string) {
	if h, ok := e.handler.(Hinter); ok {
		h.OnHint(msg)
	}
}
