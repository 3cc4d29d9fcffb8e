package truetype

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/gogpu/fontmesh"
)

// Compound component flag bits. Bits not listed here are either hinting
// related or reserved and are ignored.
const (
	flagArgsAreWords     = 0x0001
	flagArgsAreXY        = 0x0002
	flagScale            = 0x0008
	flagMoreComponents   = 0x0020
	flagXYScale          = 0x0040
	flagTwoByTwo         = 0x0080
	flagHaveInstructions = 0x0100
)

// Simple glyph flag bits.
const (
	ptOnCurve   = 0x01
	ptXShort    = 0x02
	ptYShort    = 0x04
	ptRepeat    = 0x08
	ptXSameSign = 0x10 // short X sign, or "X unchanged" when X is long
	ptYSameSign = 0x20 // short Y sign, or "Y unchanged" when Y is long
)

// maxCompoundDepth caps component nesting. Real fonts rarely nest more
// than two or three levels; the cap is a safety valve against crafted
// files.
const maxCompoundDepth = 32

// Outline returns gid's canonical outline, decoding it on first request
// and serving the memoized value afterwards. Glyphs without geometry
// (such as space) return an empty outline, not an error.
//
// The returned outline is shared and must be treated as read-only.
func (f *Font) Outline(gid uint16) (*fontmesh.Outline, error) {
	if gid >= f.numGlyphs {
		return nil, &GIDOutOfRangeError{GID: gid, NumGlyphs: f.numGlyphs}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outlineLocked(gid, nil)
}

// outlineLocked resolves gid through the cache, decoding on miss. The
// visiting stack carries the gids currently being composed so component
// cycles fail instead of recursing forever. Caller holds f.mu.
func (f *Font) outlineLocked(gid uint16, visiting []uint16) (*fontmesh.Outline, error) {
	if o, ok := f.outlines[gid]; ok {
		return o, nil
	}
	if slices.Contains(visiting, gid) {
		return nil, &CompoundCycleError{GID: gid}
	}
	if len(visiting) >= maxCompoundDepth {
		return nil, ErrCompoundDepthExceeded
	}

	o, err := f.decodeGlyph(gid, append(visiting, gid))
	if err != nil {
		return nil, err
	}
	f.outlines[gid] = o
	return o, nil
}

// decodeGlyph decodes gid's glyf entry into a canonical outline.
func (f *Font) decodeGlyph(gid uint16, visiting []uint16) (*fontmesh.Outline, error) {
	start, end := f.glyphRange(gid)
	if start == end {
		// Blank glyph; cached like any other so repeated lookups stay cheap.
		return &fontmesh.Outline{}, nil
	}

	data := f.r.data[f.glyf.offset+start : f.glyf.offset+end]
	cur := newCursor(data)
	numContours := cur.i16()
	cur.skip(8) // bounding box, recomputed from points when needed
	if err := cur.err(); err != nil {
		return nil, fmt.Errorf("glyph %d header: %w", gid, err)
	}

	if numContours < 0 {
		return f.decodeCompound(gid, cur, visiting)
	}
	return decodeSimple(gid, cur, int(numContours))
}

// decodeSimple decodes a simple glyph: contour end indices, a skipped
// instruction block, the run-length-encoded flag stream, then the delta-
// encoded X and Y streams.
func decodeSimple(gid uint16, cur *cursor, numContours int) (*fontmesh.Outline, error) {
	ends := make([]int, numContours)
	for i := range ends {
		ends[i] = int(cur.u16())
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = ends[numContours-1] + 1
	}

	instructionLength := cur.u16()
	cur.skip(int(instructionLength))

	flags := make([]uint8, 0, numPoints)
	for len(flags) < numPoints {
		fl := cur.u8()
		flags = append(flags, fl)
		if fl&ptRepeat != 0 {
			count := int(cur.u8())
			// The repeat count must never push past numPoints.
			if rem := numPoints - len(flags); count > rem {
				count = rem
			}
			for range count {
				flags = append(flags, fl)
			}
		}
		if cur.err() != nil {
			break
		}
	}

	points := make([]fontmesh.Point, numPoints)
	x := 0.0
	for i, fl := range flags {
		switch {
		case fl&ptXShort != 0:
			d := float64(cur.u8())
			if fl&ptXSameSign == 0 {
				d = -d
			}
			x += d
		case fl&ptXSameSign == 0:
			x += float64(cur.i16())
		}
		points[i].X = x
	}
	y := 0.0
	for i, fl := range flags {
		switch {
		case fl&ptYShort != 0:
			d := float64(cur.u8())
			if fl&ptYSameSign == 0 {
				d = -d
			}
			y += d
		case fl&ptYSameSign == 0:
			y += float64(cur.i16())
		}
		points[i].Y = y
	}
	if err := cur.err(); err != nil {
		return nil, fmt.Errorf("glyph %d: %w", gid, err)
	}

	onCurve := bitset.New(uint(numPoints))
	for i, fl := range flags {
		if fl&ptOnCurve != 0 {
			onCurve.Set(uint(i))
		}
	}
	return &fontmesh.Outline{Points: points, OnCurve: onCurve, Ends: ends}, nil
}

// decodeCompound assembles a compound glyph by transforming and
// concatenating its component outlines. Components resolve through the
// shared cache; the visiting stack already contains gid.
func (f *Font) decodeCompound(gid uint16, cur *cursor, visiting []uint16) (*fontmesh.Outline, error) {
	var points []fontmesh.Point
	var ends []int
	onCurve := bitset.New(0)

	var flags uint16
	for {
		flags = cur.u16()
		componentGID := cur.u16()

		var arg1, arg2 int32
		if flags&flagArgsAreWords != 0 {
			raw1, raw2 := cur.u16(), cur.u16()
			if flags&flagArgsAreXY != 0 {
				arg1, arg2 = int32(int16(raw1)), int32(int16(raw2))
			} else {
				arg1, arg2 = int32(raw1), int32(raw2)
			}
		} else {
			raw1, raw2 := cur.u8(), cur.u8()
			if flags&flagArgsAreXY != 0 {
				arg1, arg2 = int32(int8(raw1)), int32(int8(raw2))
			} else {
				arg1, arg2 = int32(raw1), int32(raw2)
			}
		}

		// Transform matrix; scales are F2Dot14.
		a, b, c, d := 1.0, 0.0, 0.0, 1.0
		switch {
		case flags&flagScale != 0:
			s := cur.f2dot14()
			a, d = s, s
		case flags&flagXYScale != 0:
			a = cur.f2dot14()
			d = cur.f2dot14()
		case flags&flagTwoByTwo != 0:
			a = cur.f2dot14()
			b = cur.f2dot14()
			c = cur.f2dot14()
			d = cur.f2dot14()
		}
		if err := cur.err(); err != nil {
			return nil, fmt.Errorf("compound glyph %d: %w", gid, err)
		}
		if componentGID >= f.numGlyphs {
			return nil, &GIDOutOfRangeError{GID: componentGID, NumGlyphs: f.numGlyphs}
		}

		component, err := f.outlineLocked(componentGID, visiting)
		if err != nil {
			return nil, err
		}

		var dx, dy float64
		if flags&flagArgsAreXY != 0 {
			dx, dy = float64(arg1), float64(arg2)
		} else {
			// Point-index alignment: arg1 indexes the component's
			// untransformed points, arg2 the points assembled so far.
			// The translation snaps the two together.
			var tx, ty float64
			if n := len(component.Points); n > 0 {
				lp := component.Points[clampIndex(int(arg1), n)]
				tx = a*lp.X + b*lp.Y
				ty = c*lp.X + d*lp.Y
			}
			var px, py float64
			if n := len(points); n > 0 {
				pp := points[clampIndex(int(arg2), n)]
				px, py = pp.X, pp.Y
			}
			dx, dy = px-tx, py-ty
		}

		base := len(points)
		for i, p := range component.Points {
			points = append(points, fontmesh.Point{
				X: a*p.X + b*p.Y + dx,
				Y: c*p.X + d*p.Y + dy,
			})
			if component.On(i) {
				onCurve.Set(uint(base + i))
			}
		}
		for _, e := range component.Ends {
			ends = append(ends, e+base)
		}

		if flags&flagMoreComponents == 0 {
			break
		}
	}

	// Instructions trail the last component; nothing after them matters
	// to this decoder, but the skip still validates the length field.
	if flags&flagHaveInstructions != 0 {
		n := cur.u16()
		cur.skip(int(n))
		if err := cur.err(); err != nil {
			return nil, fmt.Errorf("compound glyph %d instructions: %w", gid, err)
		}
	}

	return &fontmesh.Outline{Points: points, OnCurve: onCurve, Ends: ends}, nil
}

// clampIndex saturates i into [0, n).
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
