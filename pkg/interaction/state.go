// Package interaction implements the pointer-driven state machine shared by
// both viewports: selection clicks, drag, resize, rotate and draw-new-box.
package interaction

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// Mode identifies the active interaction variant.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
	ModeRotating
	ModeDrawingBox
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	case ModeRotating:
		return "rotating"
	case ModeDrawingBox:
		return "drawing"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Interaction is one variant of the shared interaction state. Exactly one
// is current at any time.
type Interaction interface {
	Mode() Mode
	// Subject returns the bubble index being edited, or -1.
	Subject() int
}

// Idle means no gesture is in progress.
type Idle struct{}

func (Idle) Mode() Mode   { return ModeIdle }
func (Idle) Subject() int { return -1 }

// Dragging moves a bubble. StartImage is the pointer position at drag start
// and Origin the bubble rectangle at that moment; both stay fixed.
type Dragging struct {
	Index      int
	StartImage geometry.Point
	Origin     geometry.Rect
	Offset     geometry.Point
}

func (Dragging) Mode() Mode     { return ModeDragging }
func (d Dragging) Subject() int { return d.Index }

// Live returns the rectangle as currently dragged.
func (d Dragging) Live() geometry.Rect {
	return geometry.DragLive(d.Origin, d.Offset)
}

// Resizing moves the edges selected by Handle. Start and StartImage are
// fixed at resize start; Live is recomputed from them on every move.
type Resizing struct {
	Index      int
	Handle     geometry.Handle
	StartImage geometry.Point
	Start      geometry.Rect
	Live       geometry.Rect
}

func (Resizing) Mode() Mode     { return ModeResizing }
func (r Resizing) Subject() int { return r.Index }

// Rotating turns a bubble about Center, which is in screen coordinates of
// the viewport the rotation started in.
type Rotating struct {
	Index             int
	Center            geometry.Point
	StartPointerAngle float64
	StartRotation     float64
	Angle             float64
}

func (Rotating) Mode() Mode     { return ModeRotating }
func (r Rotating) Subject() int { return r.Index }

// DrawingBox spans a new bubble from StartImage to the pointer.
type DrawingBox struct {
	StartImage geometry.Point
	Live       geometry.Rect
}

func (DrawingBox) Mode() Mode   { return ModeDrawingBox }
func (DrawingBox) Subject() int { return -1 }

// withSubject returns in retargeted at bubble index.
func withSubject(in Interaction, index int) Interaction {
	switch v := in.(type) {
	case Dragging:
		v.Index = index
		return v
	case Resizing:
		v.Index = index
		return v
	case Rotating:
		v.Index = index
		return v
	}
	return in
}

// listener is a bit set of the pointer listeners held during a gesture.
type listener uint8

const (
	listenMove listener = 1 << iota
	listenUp
)

var errBusy = errors.New("interaction: another interaction is active")

// State is the shared interaction state. The Engine is its only writer;
// renderers of both viewports read it through Current.
type State struct {
	current   Interaction
	origin    viewport.Name
	version   uint64
	listeners listener
}

// NewState returns an idle state.
func NewState() *State {
	return &State{current: Idle{}}
}

// Current returns the active interaction variant.
func (s *State) Current() Interaction { return s.current }

// Mode returns the mode of the active interaction.
func (s *State) Mode() Mode { return s.current.Mode() }

// Active reports whether a gesture is in progress.
func (s *State) Active() bool { return s.current.Mode() != ModeIdle }

// Origin returns the viewport the active gesture started in.
func (s *State) Origin() viewport.Name { return s.origin }

// Version increases on every write. Hosts compare it to decide whether to
// redraw.
func (s *State) Version() uint64 { return s.version }

// ActiveListeners returns how many pointer listeners are registered.
func (s *State) ActiveListeners() int { return bits.OnesCount8(uint8(s.listeners)) }

func (s *State) listening(l listener) bool { return s.listeners&l != 0 }

func (s *State) begin(in Interaction, origin viewport.Name) error {
	if s.Active() {
		return errBusy
	}
	s.current = in
	s.origin = origin
	s.listeners = listenMove | listenUp
	s.version++
	return nil
}

func (s *State) update(in Interaction) {
	if in.Mode() != s.current.Mode() {
		return
	}
	s.current = in
	s.version++
}

// reset returns to Idle and drops the listeners. It reports whether any
// listener was still registered so callers can tell a second release.
func (s *State) reset() bool {
	held := s.listeners != 0
	s.listeners = 0
	s.current = Idle{}
	s.origin = ""
	s.version++
	return held
}
