package fontmesh

import (
	"math"
	"testing"
)

func TestFlattenPolygonPassthrough(t *testing.T) {
	// All on-curve points: the polyline is the contour itself.
	pts := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	o := outlineFrom(t, pts, []bool{true, true, true, true}, []int{3})

	contours := Flatten(o, DefaultOptions())
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	c := contours[0]
	if len(c) != 4 {
		t.Fatalf("got %d points, want 4: %v", len(c), c)
	}
	for i, p := range pts {
		if c[i] != p {
			t.Errorf("point %d = %v, want %v", i, c[i], p)
		}
	}
}

func TestFlattenEmptyOutline(t *testing.T) {
	if got := Flatten(&Outline{}, DefaultOptions()); got != nil {
		t.Errorf("empty outline flattened to %v", got)
	}
	if got := Flatten(nil, DefaultOptions()); got != nil {
		t.Errorf("nil outline flattened to %v", got)
	}
}

// maxDeviation returns the maximum distance from sampled curve points to
// the nearest polyline segment of the closed contour c.
func maxDeviation(q QuadBez, c Contour) float64 {
	worst := 0.0
	for i := 1; i < 128; i++ {
		p := q.Eval(float64(i) / 128)
		best := math.Inf(1)
		for j := range c {
			a, b := c[j], c[(j+1)%len(c)]
			if d := pointSegmentDistance(p, a, b); d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}

func pointSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return p.Distance(a)
	}
	u := p.Sub(a).Dot(ab) / l2
	u = math.Max(0, math.Min(1, u))
	return p.Distance(a.Add(ab.Mul(u)))
}

func TestFlattenQuadWithinTolerance(t *testing.T) {
	// One on-curve anchor pair with a far control point, closed by a
	// straight edge.
	q := QuadBez{P0: Pt(0, 0), P1: Pt(400, 800), P2: Pt(800, 0)}
	o := outlineFrom(t,
		[]Point{q.P0, q.P1, q.P2},
		[]bool{true, false, true},
		[]int{2},
	)

	for _, tol := range []float64{0.5, 0.75, 4, 32} {
		contours := Flatten(o, Options{Tolerance: tol})
		if len(contours) != 1 {
			t.Fatalf("tol %v: got %d contours", tol, len(contours))
		}
		if dev := maxDeviation(q, contours[0]); dev > tol {
			t.Errorf("tol %v: max deviation %v", tol, dev)
		}
	}
}

func TestFlattenTighterToleranceMorePoints(t *testing.T) {
	o := outlineFrom(t,
		[]Point{{0, 0}, {400, 800}, {800, 0}},
		[]bool{true, false, true},
		[]int{2},
	)
	coarse := Flatten(o, Options{Tolerance: 64})[0]
	fine := Flatten(o, Options{Tolerance: 0.5})[0]
	if len(fine) <= len(coarse) {
		t.Errorf("tolerance 0.5 gave %d points, tolerance 64 gave %d", len(fine), len(coarse))
	}
}

func TestFlattenDepthCap(t *testing.T) {
	o := outlineFrom(t,
		[]Point{{0, 0}, {400, 800}, {800, 0}},
		[]bool{true, false, true},
		[]int{2},
	)
	// Impossible tolerance: only the depth cap stops subdivision, giving
	// 2^depth chords for the single curve plus the start point.
	c := Flatten(o, Options{Tolerance: 1e-12, MaxDepth: 4})[0]
	if want := 1 + 16; len(c) != want {
		t.Errorf("got %d points, want %d", len(c), want)
	}
}

func TestFlattenImplicitMidpoint(t *testing.T) {
	// Two consecutive off-curve points imply an on-curve midpoint. With a
	// huge tolerance every curve collapses to its endpoint chord, so the
	// output is exactly anchor, implied midpoint, final anchor.
	o := outlineFrom(t,
		[]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}},
		[]bool{true, false, false, true},
		[]int{3},
	)
	c := Flatten(o, Options{Tolerance: 1e9})[0]
	want := []Point{{0, 0}, {100, 50}, {0, 100}}
	if len(c) != len(want) {
		t.Fatalf("got %v, want %v", c, want)
	}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, c[i], want[i])
		}
	}
}

func TestFlattenOffCurveStart(t *testing.T) {
	tests := []struct {
		name      string
		pts       []Point
		on        []bool
		wantFirst Point
	}{
		{
			// First off, last on: the walk starts at the last point.
			name:      "last on-curve",
			pts:       []Point{{50, 100}, {100, 0}, {0, 0}},
			on:        []bool{false, true, true},
			wantFirst: Pt(0, 0),
		},
		{
			// First and last both off: start at their midpoint.
			name:      "both off-curve",
			pts:       []Point{{100, 0}, {100, 100}, {0, 100}, {0, 0}},
			on:        []bool{false, true, true, false},
			wantFirst: Pt(50, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := outlineFrom(t, tt.pts, tt.on, []int{len(tt.pts) - 1})
			contours := Flatten(o, DefaultOptions())
			if len(contours) != 1 || len(contours[0]) == 0 {
				t.Fatalf("bad contours: %v", contours)
			}
			if got := contours[0][0]; got != tt.wantFirst {
				t.Errorf("first point = %v, want %v", got, tt.wantFirst)
			}
		})
	}
}

// signedArea returns twice the signed area of the closed polyline.
func signedArea(c Contour) float64 {
	sum := 0.0
	for i := range c {
		sum += c[i].Cross(c[(i+1)%len(c)])
	}
	return sum
}

func TestFlattenPreservesOrientation(t *testing.T) {
	ccw := outlineFrom(t,
		[]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}},
		[]bool{true, true, true, true},
		[]int{3},
	)
	cw := outlineFrom(t,
		[]Point{{0, 0}, {0, 100}, {100, 100}, {100, 0}},
		[]bool{true, true, true, true},
		[]int{3},
	)
	if a := signedArea(Flatten(ccw, DefaultOptions())[0]); a <= 0 {
		t.Errorf("counter-clockwise contour got area %v", a)
	}
	if a := signedArea(Flatten(cw, DefaultOptions())[0]); a >= 0 {
		t.Errorf("clockwise contour got area %v", a)
	}

	// A curved contour keeps its orientation too.
	curved := outlineFrom(t,
		[]Point{{250, 0}, {500, 0}, {500, 250}, {500, 500}, {250, 500}, {0, 500}, {0, 250}, {0, 0}},
		[]bool{true, false, true, false, true, false, true, false},
		[]int{7},
	)
	if a := signedArea(Flatten(curved, DefaultOptions())[0]); a <= 0 {
		t.Errorf("curved counter-clockwise contour got area %v", a)
	}
}

func TestFlattenMultipleContours(t *testing.T) {
	o := outlineFrom(t,
		[]Point{
			{0, 0}, {600, 0}, {600, 600}, {0, 600},
			{200, 200}, {200, 400}, {400, 400}, {400, 200},
		},
		[]bool{true, true, true, true, true, true, true, true},
		[]int{3, 7},
	)
	contours := Flatten(o, DefaultOptions())
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	if len(contours[0]) != 4 || len(contours[1]) != 4 {
		t.Errorf("contour sizes %d, %d, want 4, 4", len(contours[0]), len(contours[1]))
	}
	if contours[1][0] != Pt(200, 200) {
		t.Errorf("second contour starts at %v", contours[1][0])
	}
}
