package fontmesh

// DefaultTolerance is the default flattening tolerance in font units.
// At typical text sizes (units-per-em 1000-2048, glyphs a few hundred
// pixels tall at most) 0.75 font units is well below a pixel, which is
// plenty for wireframe and stencil geometry.
const DefaultTolerance = 0.75

// DefaultMaxDepth is the default subdivision depth cap. Depth 12 allows
// at most 4096 chords per curve; hitting the cap is not an error, it is a
// safety valve for degenerate Beziers.
const DefaultMaxDepth = 12

// Options configures flattening and index generation.
// The zero value of any field selects its default.
type Options struct {
	// Tolerance is the maximum perpendicular deviation, in font units,
	// of the emitted polyline from the underlying Bezier path.
	// Default: [DefaultTolerance].
	Tolerance float64

	// MaxDepth caps the recursive subdivision depth per curve segment.
	// Default: [DefaultMaxDepth].
	MaxDepth int

	// CoverPad expands the stencil-cover bounding quad by this many font
	// units on every side, accommodating vertex-stage distortion applied
	// downstream. With no distortion the pad should stay zero.
	// Default: 0.
	CoverPad float64
}

// DefaultOptions returns the default tessellation options.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		MaxDepth:  DefaultMaxDepth,
	}
}

// withDefaults replaces zero fields with their defaults.
func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Contour is an ordered polyline in font units. It is implicitly closed:
// the edge from the last point back to the first exists but is not
// duplicated in the point list.
type Contour []Point

// Flatten converts a canonical outline into one polyline per contour.
//
// Straight edges pass through untouched. Quadratic Beziers are flattened
// by adaptive bisection until the control point sits within opts.Tolerance
// of the chord, or opts.MaxDepth is reached. Implied on-curve midpoints
// between consecutive off-curve points are synthesized on the fly, as is
// the implicit start point when a contour begins off-curve.
//
// Point order and contour orientation are preserved; flattening never
// reverses a contour. An empty outline yields no contours.
func Flatten(o *Outline, opts Options) []Contour {
	if o.IsEmpty() {
		return nil
	}
	opts = opts.withDefaults()
	out := make([]Contour, 0, o.NumContours())
	for i := range o.NumContours() {
		start, end := o.ContourRange(i)
		out = append(out, flattenContour(o, start, end, opts))
	}
	return out
}

// flattenContour walks the closed contour [start, end] once and emits its
// polyline.
func flattenContour(o *Outline, start, end int, opts Options) Contour {
	n := end - start + 1
	pt := func(i int) Point { return o.Points[start+i] }
	on := func(i int) bool { return o.On(start + i) }

	// Establish the starting on-curve anchor and the rotation of the walk.
	// If the first point is off-curve the anchor is implicit: the last
	// point when that is on-curve, otherwise the midpoint of (last, first).
	var anchor Point
	var first, count int
	switch {
	case on(0):
		anchor, first, count = pt(0), 1, n-1
	case n > 1 && on(n-1):
		anchor, first, count = pt(n-1), 0, n-1
	default:
		anchor, first, count = pt(n-1).Midpoint(pt(0)), 0, n
	}

	c := Contour{anchor}
	cur := anchor
	var ctrl Point
	haveCtrl := false

	for k := range count {
		q := pt((first + k) % n)
		if on((first + k) % n) {
			if haveCtrl {
				c = flattenQuad(c, QuadBez{P0: cur, P1: ctrl, P2: q}, opts)
				haveCtrl = false
			} else {
				c = append(c, q)
			}
			cur = q
			continue
		}
		if haveCtrl {
			// Two off-curve points in a row: the implied on-curve point
			// is their midpoint.
			mid := ctrl.Midpoint(q)
			c = flattenQuad(c, QuadBez{P0: cur, P1: ctrl, P2: mid}, opts)
			cur = mid
		}
		ctrl, haveCtrl = q, true
	}

	// Close back to the anchor. A trailing control point closes with a
	// curve; its endpoint is the anchor, already first in the list, so
	// drop the duplicate. A straight closing edge is implicit.
	if haveCtrl {
		c = flattenQuad(c, QuadBez{P0: cur, P1: ctrl, P2: anchor}, opts)
		c = c[:len(c)-1]
	}
	return c
}

// flattenQuad appends the chords approximating q to c, including q.P2 but
// not q.P0 (the caller has already emitted it).
func flattenQuad(c Contour, q QuadBez, opts Options) Contour {
	return appendQuad(c, q, opts.Tolerance, opts.MaxDepth)
}

func appendQuad(c Contour, q QuadBez, tol float64, depth int) Contour {
	if depth <= 0 || q.flatWithin(tol) {
		return append(c, q.P2)
	}
	l, r := q.Subdivide()
	c = appendQuad(c, l, tol, depth-1)
	return appendQuad(c, r, tol, depth-1)
}
