package fontmesh

import "math"

// Rect represents an axis-aligned rectangle.
// Min holds the minimum coordinates, Max the maximum.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Expand grows the rectangle by pad on all four sides.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - pad, Y: r.Min.Y - pad},
		Max: Point{X: r.Max.X + pad, Y: r.Max.Y + pad},
	}
}

// ExtendBy grows the rectangle to include p.
func (r Rect) ExtendBy(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// QuadBez represents a quadratic Bezier curve.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau's
// algorithm. The join point lies exactly on the curve.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	l1 := q.P0.Midpoint(q.P1)
	r1 := q.P1.Midpoint(q.P2)
	mid := l1.Midpoint(r1)
	return QuadBez{P0: q.P0, P1: l1, P2: mid}, QuadBez{P0: mid, P1: r1, P2: q.P2}
}

// flatWithin reports whether the curve deviates from its chord by at most
// tol. The deviation bound is the perpendicular distance from the control
// point to the chord P0-P2; the curve itself stays within half of that, so
// this test is conservative.
//
// Distances are compared squared to avoid the square root:
//
//	dist^2 = cross(P2-P0, P1-P0)^2 / |P2-P0|^2  <=  tol^2
//
// A degenerate chord (P0 == P2) falls back to the control-point distance.
func (q QuadBez) flatWithin(tol float64) bool {
	chord := q.P2.Sub(q.P0)
	ctrl := q.P1.Sub(q.P0)
	c2 := chord.LengthSquared()
	if c2 == 0 {
		return ctrl.LengthSquared() <= tol*tol
	}
	cr := chord.Cross(ctrl)
	return cr*cr <= tol*tol*c2
}
