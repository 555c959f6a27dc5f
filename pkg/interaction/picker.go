package interaction

import (
	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
	"github.com/OpenTraceLab/bubbleproof/pkg/viewport"
)

// TargetKind classifies what lies under the pointer.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetBody
	TargetHandle
	TargetRotate
)

// Target is the result of hit-testing a screen position.
type Target struct {
	Kind   TargetKind
	Index  int
	Handle geometry.Handle
}

// Picker hit-tests a screen position in one viewport.
type Picker interface {
	Pick(view viewport.Name, screen geometry.Point) Target
}

// PickFunc adapts a function to Picker.
type PickFunc func(view viewport.Name, screen geometry.Point) Target

func (f PickFunc) Pick(view viewport.Name, screen geometry.Point) Target {
	return f(view, screen)
}
