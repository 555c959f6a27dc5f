// Package bubble defines the annotated regions edited by the proofreading
// core and the page document that carries them.
package bubble

import (
	"fmt"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

// MinSize is the smallest committed width or height of a bubble, in image units.
const MinSize = 10.0

// Default image dimensions used for clamping until real ones are known.
const (
	DefaultImageWidth  = 2000
	DefaultImageHeight = 2000
)

// Bubble is a rectangular region of interest on a page image.
//
// Coords is always axis-aligned in image space. RotationAngle is applied
// about the rectangle center when drawing only; geometry edits never
// rotate Coords themselves.
type Bubble struct {
	Coords        geometry.Rect    `json:"coords"`
	RotationAngle float64          `json:"rotation_angle,omitempty"`
	Polygon       []geometry.Point `json:"polygon,omitempty"`
	Text          string           `json:"text,omitempty"`
	Translation   string           `json:"translation,omitempty"`
}

// New returns a bubble covering r with no rotation.
func New(r geometry.Rect) Bubble {
	return Bubble{Coords: r.Normalize()}
}

// FromPolygon normalizes a detection polygon to the axis-aligned rectangle
// used for editing. The polygon is kept for reference only.
func FromPolygon(points []geometry.Point) (Bubble, error) {
	if len(points) < 3 {
		return Bubble{}, fmt.Errorf("bubble: polygon needs at least 3 points, got %d", len(points))
	}
	pts := make([]geometry.Point, len(points))
	copy(pts, points)
	return Bubble{
		Coords:  geometry.BoundingBox(pts),
		Polygon: pts,
	}, nil
}

// Center returns the rotation center of the bubble.
func (b Bubble) Center() geometry.Point {
	return b.Coords.Center()
}

// Validate checks the committed-bubble invariants.
func (b Bubble) Validate() error {
	if !b.Coords.Finite() {
		return fmt.Errorf("bubble: non-finite coords %+v", b.Coords)
	}
	if b.Coords.X1 >= b.Coords.X2 || b.Coords.Y1 >= b.Coords.Y2 {
		return fmt.Errorf("bubble: coords %+v are not ordered", b.Coords)
	}
	if !b.Coords.AtLeast(MinSize) {
		return fmt.Errorf("bubble: %gx%g is below the %g minimum", b.Coords.Width(), b.Coords.Height(), MinSize)
	}
	if b.RotationAngle <= -180 || b.RotationAngle > 180 {
		return fmt.Errorf("bubble: rotation %g outside (-180, 180]", b.RotationAngle)
	}
	return nil
}
