package geometry

import (
	"errors"
	"math"
)

// ErrTooSmall is returned when a committed rectangle would be narrower or
// shorter than the minimum bubble size.
var ErrTooSmall = errors.New("geometry: region below minimum size")

// DragDelta returns the image-space pointer travel since the drag started.
func DragDelta(startImage, currentImage Point) Point {
	return currentImage.Sub(startImage)
}

// DragLive returns the live rectangle for a drag: the original rectangle
// moved by delta, size unchanged.
func DragLive(origin Rect, delta Point) Rect {
	return origin.Translate(delta)
}

// CommitDrag rounds the dragged rectangle and clamps its top-left corner
// into [0, W-width] x [0, H-height] so the whole box stays on the image.
func CommitDrag(live Rect, bounds Size) Rect {
	r := live.Normalize().Round()
	w, h := r.Width(), r.Height()
	x := clamp(r.X1, 0, bounds.Width-w)
	y := clamp(r.Y1, 0, bounds.Height-h)
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Resize applies delta to the coordinates handle h may move on the fixed
// resize-start rectangle, then normalizes so the rectangle may flip past
// its opposite edge. ok is false when the result is below minSize or not
// finite; callers keep their previous live value in that case.
func Resize(start Rect, h Handle, delta Point, minSize float64) (r Rect, ok bool) {
	e := h.Edges()
	r = start
	if e.X1 {
		r.X1 += delta.X
	}
	if e.Y1 {
		r.Y1 += delta.Y
	}
	if e.X2 {
		r.X2 += delta.X
	}
	if e.Y2 {
		r.Y2 += delta.Y
	}
	r = r.Normalize()
	if !r.Finite() || !r.AtLeast(minSize) {
		return start, false
	}
	return r, true
}

// ClampRect rounds a rectangle and clamps every coordinate into the image.
func ClampRect(r Rect, bounds Size) Rect {
	r = r.Normalize().Round()
	return Rect{
		X1: clamp(r.X1, 0, bounds.Width),
		Y1: clamp(r.Y1, 0, bounds.Height),
		X2: clamp(r.X2, 0, bounds.Width),
		Y2: clamp(r.Y2, 0, bounds.Height),
	}
}

// CommitResize rounds and clamps the live resize rectangle. If the result
// is below minSize the whole resize must be discarded and ErrTooSmall is
// returned.
func CommitResize(live Rect, bounds Size, minSize float64) (Rect, error) {
	r := ClampRect(live, bounds)
	if !r.AtLeast(minSize) {
		return Rect{}, ErrTooSmall
	}
	return r, nil
}

// DrawLive returns the box spanned by the draw start and the pointer.
func DrawLive(startImage, currentImage Point) Rect {
	return Span(startImage, currentImage)
}

// CommitDraw clamps a drawn box to the image. ok is false when either
// dimension is below minSize, in which case no bubble is created.
func CommitDraw(live Rect, bounds Size, minSize float64) (Rect, bool) {
	r := ClampRect(live, bounds)
	if !r.AtLeast(minSize) {
		return Rect{}, false
	}
	return r, true
}

// Equal reports whether two rectangles match within eps on every corner.
func Equal(a, b Rect, eps float64) bool {
	return math.Abs(a.X1-b.X1) <= eps && math.Abs(a.Y1-b.Y1) <= eps &&
		math.Abs(a.X2-b.X2) <= eps && math.Abs(a.Y2-b.Y2) <= eps
}
