package fontmesh

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Outline is the canonical per-glyph geometry produced by the font
// decoder: three parallel arrays in one value, avoiding any per-point
// allocation.
//
//   - Points holds the outline points in font units, in contour order.
//   - OnCurve holds one bit per point: set = the point lies on the drawn
//     curve, clear = it is a quadratic Bezier control point.
//   - Ends holds the index of the last point of each contour, in order.
//
// Contours are closed: the segment from the last point of a contour back
// to its first point always exists. Consecutive on-curve points form
// straight edges; a single off-curve point between two on-curve points
// defines a quadratic Bezier; two successive off-curve points imply an
// on-curve point at their midpoint.
//
// An Outline never mutates after construction. Decoders hand out shared
// values; callers must treat them as read-only.
type Outline struct {
	Points  []Point
	OnCurve *bitset.BitSet
	Ends    []int
}

// IsEmpty reports whether the outline has no geometry (blank glyphs such
// as space).
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Points) == 0
}

// NumContours returns the number of contours.
func (o *Outline) NumContours() int {
	if o == nil {
		return 0
	}
	return len(o.Ends)
}

// On reports whether point i lies on the curve.
func (o *Outline) On(i int) bool {
	return o.OnCurve != nil && o.OnCurve.Test(uint(i))
}

// ContourRange returns the inclusive point index range [start, end] of
// contour i.
func (o *Outline) ContourRange(i int) (start, end int) {
	if i > 0 {
		start = o.Ends[i-1] + 1
	}
	return start, o.Ends[i]
}

// Bounds returns the axis-aligned bounding box of the control points.
// Because quadratic Beziers lie within the convex hull of their control
// points, the box bounds the rendered glyph too. Returns the zero Rect
// for an empty outline.
func (o *Outline) Bounds() Rect {
	if o.IsEmpty() {
		return Rect{}
	}
	r := Rect{Min: o.Points[0], Max: o.Points[0]}
	for _, p := range o.Points[1:] {
		r = r.ExtendBy(p)
	}
	return r
}

// Validate checks the structural invariants:
//
//   - Ends is monotonically non-decreasing, each contour has at least one
//     point, and the last value equals len(Points)-1 when non-empty.
//   - OnCurve is non-nil. Its bit length is not checked; bits past its
//     length read as off-curve.
//
// Decoded outlines always satisfy these; Validate exists for tests and
// for callers constructing outlines by hand.
func (o *Outline) Validate() error {
	if o.IsEmpty() {
		if len(o.Ends) != 0 {
			return fmt.Errorf("fontmesh: empty outline with %d contour ends", len(o.Ends))
		}
		return nil
	}
	if len(o.Ends) == 0 {
		return fmt.Errorf("fontmesh: %d points but no contours", len(o.Points))
	}
	prev := -1
	for i, e := range o.Ends {
		if e <= prev {
			return fmt.Errorf("fontmesh: contour %d end %d not after previous end %d", i, e, prev)
		}
		prev = e
	}
	if last := o.Ends[len(o.Ends)-1]; last != len(o.Points)-1 {
		return fmt.Errorf("fontmesh: last contour end %d != last point index %d", last, len(o.Points)-1)
	}
	if o.OnCurve == nil {
		return fmt.Errorf("fontmesh: missing on-curve bits for %d points", len(o.Points))
	}
	return nil
}
