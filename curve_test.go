package fontmesh

import (
	"math"
	"testing"
)

func TestQuadBezEval(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(50, 100), P2: Pt(100, 0)}

	tests := []struct {
		name string
		t    float64
		want Point
	}{
		{"start", 0, Pt(0, 0)},
		{"end", 1, Pt(100, 0)},
		{"apex", 0.5, Pt(50, 50)},
		{"quarter", 0.25, Pt(25, 37.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.Eval(tt.t)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestQuadBezSubdivide(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(40, 80), P2: Pt(120, 10)}
	l, r := q.Subdivide()

	if l.P0 != q.P0 {
		t.Errorf("left start %v, want %v", l.P0, q.P0)
	}
	if r.P2 != q.P2 {
		t.Errorf("right end %v, want %v", r.P2, q.P2)
	}
	if l.P2 != r.P0 {
		t.Errorf("halves do not join: %v vs %v", l.P2, r.P0)
	}
	mid := q.Eval(0.5)
	if math.Abs(l.P2.X-mid.X) > 1e-12 || math.Abs(l.P2.Y-mid.Y) > 1e-12 {
		t.Errorf("join point %v not on curve, want %v", l.P2, mid)
	}

	// The halves must trace the same curve.
	for _, u := range []float64{0.1, 0.3, 0.7, 0.9} {
		var got Point
		if u < 0.5 {
			got = l.Eval(u * 2)
		} else {
			got = r.Eval((u - 0.5) * 2)
		}
		want := q.Eval(u)
		if got.Distance(want) > 1e-9 {
			t.Errorf("subdivided curve diverges at t=%v: %v vs %v", u, got, want)
		}
	}
}

func TestQuadBezFlatWithin(t *testing.T) {
	tests := []struct {
		name string
		q    QuadBez
		tol  float64
		want bool
	}{
		{"straight", QuadBez{Pt(0, 0), Pt(50, 0), Pt(100, 0)}, 0.1, true},
		{"tall arc", QuadBez{Pt(0, 0), Pt(50, 100), Pt(100, 0)}, 1, false},
		{"shallow arc", QuadBez{Pt(0, 0), Pt(50, 1), Pt(100, 0)}, 2, true},
		{"degenerate chord far control", QuadBez{Pt(0, 0), Pt(0, 50), Pt(0, 0)}, 1, false},
		{"degenerate chord near control", QuadBez{Pt(0, 0), Pt(0.5, 0), Pt(0, 0)}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.flatWithin(tt.tol); got != tt.want {
				t.Errorf("flatWithin(%v) = %v, want %v", tt.tol, got, tt.want)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := NewRect(Pt(10, 30), Pt(-5, 20))
	if r.Min != Pt(-5, 20) || r.Max != Pt(10, 30) {
		t.Fatalf("NewRect did not normalize: %+v", r)
	}
	if r.Width() != 15 || r.Height() != 10 {
		t.Errorf("Width/Height = %v, %v, want 15, 10", r.Width(), r.Height())
	}

	e := r.Expand(2)
	if e.Min != Pt(-7, 18) || e.Max != Pt(12, 32) {
		t.Errorf("Expand(2) = %+v", e)
	}

	x := r.ExtendBy(Pt(100, -1))
	if x.Min != Pt(-5, -1) || x.Max != Pt(100, 30) {
		t.Errorf("ExtendBy = %+v", x)
	}
}
