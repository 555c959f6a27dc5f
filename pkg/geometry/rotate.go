package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultSnapDegrees is the rotation snapping step used with the snap modifier.
const DefaultSnapDegrees = 15.0

// PointerAngle returns atan2(dy, dx) in degrees of p as seen from center.
func PointerAngle(center, p Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
}

// NormalizeAngle folds an angle in degrees into (-180, 180].
// Non-finite input normalizes to 0.
func NormalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	if deg > 180 || deg <= -180 {
		// Bring huge values close before the loop adjustment.
		deg = math.Mod(deg, 360)
	}
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// SnapAngle rounds deg to the nearest multiple of step and renormalizes.
// A non-positive step disables snapping.
func SnapAngle(deg, step float64) float64 {
	if !(step > 0) {
		return NormalizeAngle(deg)
	}
	return NormalizeAngle(math.Round(deg/step) * step)
}

// RotateLive computes the live rotation from the rotation-start state and
// the current pointer angle, optionally snapped to step.
func RotateLive(startRotation, startPointerAngle, currentPointerAngle float64, snap bool, step float64) float64 {
	angle := NormalizeAngle(startRotation + (currentPointerAngle - startPointerAngle))
	if snap {
		angle = SnapAngle(angle, step)
	}
	return angle
}

func toVec(p Point) r2.Vec   { return r2.Vec{X: p.X, Y: p.Y} }
func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// RotateAbout rotates p by deg degrees (clockwise on a y-down screen)
// around center.
func RotateAbout(p, center Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rot := r2.NewRotation(deg*math.Pi/180, toVec(center))
	return fromVec(rot.Rotate(toVec(p)))
}

// RotatedCorners returns the four corners of r rotated by deg about its
// center, in nw, ne, se, sw order.
func RotatedCorners(r Rect, deg float64) [4]Point {
	c := r.Center()
	return [4]Point{
		RotateAbout(Point{X: r.X1, Y: r.Y1}, c, deg),
		RotateAbout(Point{X: r.X2, Y: r.Y1}, c, deg),
		RotateAbout(Point{X: r.X2, Y: r.Y2}, c, deg),
		RotateAbout(Point{X: r.X1, Y: r.Y2}, c, deg),
	}
}

// Unrotate maps p into the local frame of a rectangle rotated by deg about
// its center, so axis-aligned tests can be applied.
func Unrotate(r Rect, deg float64, p Point) Point {
	return RotateAbout(p, r.Center(), -deg)
}

// ContainsRotated reports whether p lies inside r rotated by deg.
func ContainsRotated(r Rect, deg float64, p Point) bool {
	return r.Contains(Unrotate(r, deg, p))
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(toVec(a), toVec(b)))
}
