package interaction

import (
	"github.com/OpenTraceLab/bubbleproof/pkg/bubble"
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

// Document is the read side of the bubble list the engine edits.
type Document interface {
	Bubbles() []bubble.Bubble
	// ImageSize returns the page image size, or an empty size if unknown.
	ImageSize() geometry.Size
}

// Handler receives selection changes and finalized edits. It is called
// once per gesture, after the state has returned to Idle.
type Handler interface {
	OnSelect(index int)
	OnMultiSelect(index int)
	OnDragEnd(index int, coords geometry.Rect)
	OnResizeEnd(index int, coords geometry.Rect)
	OnRotateEnd(index int, angle float64)
	OnDrawBubble(coords geometry.Rect)
}

// Hinter is optionally implemented by a Handler to show short messages
// for rejected edits.
type Hinter interface {
	OnHint(msg string)
}

// Funcs adapts plain functions to Handler and Hinter. Nil fields are skipped.
type Funcs struct {
	Select      func(index int)
	MultiSelect func(index int)
	DragEnd     func(index int, coords geometry.Rect)
	ResizeEnd   func(index int, coords geometry.Rect)
	RotateEnd   func(index int, angle float64)
	DrawBubble  func(coords geometry.Rect)
	Hint        func(msg string)
}

func (f Funcs) OnSelect(index int) {
	if f.Select != nil {
		f.Select(index)
	}
}

func (f Funcs) OnMultiSelect(index int) {
	if f.MultiSelect != nil {
		f.MultiSelect(index)
	}
}

func (f Funcs) OnDragEnd(index int, coords geometry.Rect) {
	if f.DragEnd != nil {
		f.DragEnd(index, coords)
	}
}

func (f Funcs) OnResizeEnd(index int, coords geometry.Rect) {
	if f.ResizeEnd != nil {
		f.ResizeEnd(index, coords)
	}
}

func (f Funcs) OnRotateEnd(index int, angle float64) {
	if f.RotateEnd != nil {
		f.RotateEnd(index, angle)
	}
}

func (f Funcs) OnDrawBubble(coords geometry.Rect) {
	if f.DrawBubble != nil {
		f.DrawBubble(coords)
	}
}

func (f Funcs) OnHint(msg string) {
	if f.Hint != nil {
		f.Hint(msg)
	}
}

// Tee fans events out to several handlers in order. Hints reach those
// that implement Hinter.
func Tee(handlers ...Handler) Handler {
	return tee(handlers)
}

type tee []Handler

func (t tee) OnSelect(index int) {
	for _, h := range t {
		h.OnSelect(index)
	}
}

func (t tee) OnMultiSelect(index int) {
	for _, h := range t {
		h.OnMultiSelect(index)
	}
}

func (t tee) OnDragEnd(index int, coords geometry.Rect) {
	for _, h := range t {
		h.OnDragEnd(index, coords)
	}
}

func (t tee) OnResizeEnd(index int, coords geometry.Rect) {
	for _, h := range t {
		h.OnResizeEnd(index, coords)
	}
}

func (t tee) OnRotateEnd(index int, angle float64) {
	for _, h := range t {
		h.OnRotateEnd(index, angle)
	}
}

func (t tee) OnDrawBubble(coords geometry.Rect) {
	for _, h := range t {
		h.OnDrawBubble(coords)
	}
}

func (t tee) OnHint(msg string) {
	for _, h := range t {
		if hn, ok := h.(Hinter); ok {
			hn.OnHint(msg)
		}
	}
}

// EventKind names an emitted event.
type EventKind string

const (
	EventSelect      EventKind = "select"
	EventMultiSelect EventKind = "multiselect"
	EventDragEnd     EventKind = "drag"
	EventResizeEnd   EventKind = "resize"
	EventRotateEnd   EventKind = "rotate"
	EventDrawBubble  EventKind = "draw"
	EventHint        EventKind = "hint"
)

// Event is a recorded handler call.
type Event struct {
	Kind    EventKind     `json:"kind"`
	Index   int           `json:"index"`
	Coords  geometry.Rect `json:"coords"`
	Angle   float64       `json:"angle,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Recorder is a Handler that keeps every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) add(e Event) { r.Events = append(r.Events, e) }

func (r *Recorder) OnSelect(index int) { r.add(Event{Kind: EventSelect, Index: index}) }

func (r *Recorder) OnMultiSelect(index int) { r.add(Event{Kind: EventMultiSelect, Index: index}) }

func (r *Recorder) OnDragEnd(index int, coords geometry.Rect) {
	r.add(Event{Kind: EventDragEnd, Index: index, Coords: coords})
}

func (r *Recorder) OnResizeEnd(index int, coords geometry.Rect) {
	r.add(Event{Kind: EventResizeEnd, Index: index, Coords: coords})
}

func (r *Recorder) OnRotateEnd(index int, angle float64) {
	r.add(Event{Kind: EventRotateEnd, Index: index, Angle: angle})
}

func (r *Recorder) OnDrawBubble(coords geometry.Rect) {
	r.add(Event{Kind: EventDrawBubble, Index: -1, Coords: coords})
}

func (r *Recorder) OnHint(msg string) { r.add(Event{Kind: EventHint, Index: -1, Message: msg}) }

// Reset drops the recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }
