// Package viewport maps between image space and screen space for the two
// comparison panes and keeps them optionally locked together.
package viewport

import (
	"math"

	"github.com/OpenTraceLab/bubbleproof/pkg/geometry"
)

// Transform maps an image point P to the screen as Translate + P*Scale.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity returns the unit transform (scale 1, no translation).
func Identity() Transform {
	return Transform{Scale: 1}
}

// Translate returns the translation as a point.
func (t Transform) Translate() geometry.Point {
	return geometry.Pt(t.TranslateX, t.TranslateY)
}

// ToImageSpace converts a screen position to image coordinates.
func (t Transform) ToImageSpace(screen geometry.Point) geometry.Point {
	return geometry.Point{
		X: (screen.X - t.TranslateX) / t.Scale,
		Y: (screen.Y - t.TranslateY) / t.Scale,
	}
}

// ToScreenSpace converts an image position to screen coordinates.
func (t Transform) ToScreenSpace(image geometry.Point) geometry.Point {
	return image.Scale(t.Scale).Add(t.Translate())
}

// RectToScreen maps both corners of an image-space rectangle.
func (t Transform) RectToScreen(r geometry.Rect) geometry.Rect {
	a := t.ToScreenSpace(r.Min())
	b := t.ToScreenSpace(r.Max())
	return geometry.Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// ImageLength converts a screen-fixed length in pixels to image units, so
// that drawing it through the transform yields exactly px pixels.
func (t Transform) ImageLength(px float64) float64 {
	return px / t.Scale
}

// Valid reports whether the transform is usable: finite, positive scale.
func (t Transform) Valid() bool {
	return t.Scale > 0 && !math.IsInf(t.Scale, 0) &&
		!math.IsNaN(t.TranslateX) && !math.IsInf(t.TranslateX, 0) &&
		!math.IsNaN(t.TranslateY) && !math.IsInf(t.TranslateY, 0)
}
