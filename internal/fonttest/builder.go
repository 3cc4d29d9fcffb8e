// Package fonttest assembles minimal TrueType font files in memory for
// tests. The builder emits only the seven tables the truetype package
// requires, with checksums left zero (the parser never verifies them).
package fonttest

import "encoding/binary"

// Compound component flags, mirroring the glyf specification.
const (
	FlagArgsAreWords     = 0x0001
	FlagArgsAreXY        = 0x0002
	FlagScale            = 0x0008
	FlagMoreComponents   = 0x0020
	FlagXYScale          = 0x0040
	FlagTwoByTwo         = 0x0080
	FlagHaveInstructions = 0x0100
)

// GlyphPoint is one point of a simple glyph contour, in font units.
type GlyphPoint struct {
	X, Y int16
	On   bool
}

// Seg is one format 4 cmap segment. If GlyphIDs is nil the segment maps
// through idDelta arithmetic; otherwise the ids are written to the
// trailing glyphIdArray and reached through idRangeOffset.
type Seg struct {
	Start, End uint16
	Delta      int16
	GlyphIDs   []uint16
}

// Group is one format 12 cmap group.
type Group struct {
	Start, End uint32
	StartGID   uint32
}

// Component is one compound glyph component. Args are encoded as words
// (FlagArgsAreWords is set automatically); FlagMoreComponents is managed
// by the builder. Transform holds the F2Dot14 coefficients selected by
// the Scale/XYScale/TwoByTwo flag, in storage order.
type Component struct {
	GID        uint16
	Flags      uint16
	Arg1, Arg2 int16
	Transform  []float64
}

// Builder accumulates the parts of a font file. New fills in font-wide
// defaults; Bytes writes every field as it is, zero values included.
type Builder struct {
	ScalerType  uint32
	UnitsPerEm  uint16
	Ascent      int16
	Descent     int16
	LineGap     int16
	LongLoca    bool
	Advances    []uint16 // one per hmetric; numberOfHMetrics = len(Advances)
	LSBs        []int16  // one per glyph
	Glyphs      [][]byte // glyf blob per gid; nil = blank glyph
	Segments    []Seg    // format 4 subtable; nil omits it
	Groups      []Group  // format 12 subtable; nil omits it
	OmitTables  map[string]bool
	ExtraTables map[string][]byte
}

// New returns a builder with sane font-wide defaults and no glyphs.
func New() *Builder {
	return &Builder{
		ScalerType: 0x00010000,
		UnitsPerEm: 1000,
		Ascent:     800,
		Descent:    -200,
		LineGap:    90,
	}
}

// SimpleGlyph encodes a simple glyph from its contours. Deltas are
// always written as full 16-bit values (no short or repeat compression);
// the bounding box is computed from the points.
func SimpleGlyph(contours ...[]GlyphPoint) []byte {
	var pts []GlyphPoint
	var ends []uint16
	for _, c := range contours {
		pts = append(pts, c...)
		ends = append(ends, uint16(len(pts)-1))
	}

	var xMin, yMin, xMax, yMax int16
	for i, p := range pts {
		if i == 0 || p.X < xMin {
			xMin = p.X
		}
		if i == 0 || p.X > xMax {
			xMax = p.X
		}
		if i == 0 || p.Y < yMin {
			yMin = p.Y
		}
		if i == 0 || p.Y > yMax {
			yMax = p.Y
		}
	}

	var b []byte
	b = be16(b, uint16(len(contours)))
	for _, v := range []int16{xMin, yMin, xMax, yMax} {
		b = be16(b, uint16(v))
	}
	for _, e := range ends {
		b = be16(b, e)
	}
	b = be16(b, 0) // instructionLength
	for _, p := range pts {
		var fl byte
		if p.On {
			fl = 0x01
		}
		b = append(b, fl)
	}
	prev := int16(0)
	for _, p := range pts {
		b = be16(b, uint16(p.X-prev))
		prev = p.X
	}
	prev = 0
	for _, p := range pts {
		b = be16(b, uint16(p.Y-prev))
		prev = p.Y
	}
	return b
}

// RawGlyph wraps hand-written glyph bytes (for flag-stream and
// truncation tests).
func RawGlyph(b []byte) []byte { return b }

// CompoundGlyph encodes a compound glyph from its components.
func CompoundGlyph(components ...Component) []byte {
	var b []byte
	b = be16(b, 0xFFFF) // numContours = -1
	for range 4 {
		b = be16(b, 0) // bounding box
	}
	for i, c := range components {
		flags := c.Flags | FlagArgsAreWords
		if i < len(components)-1 {
			flags |= FlagMoreComponents
		}
		b = be16(b, flags)
		b = be16(b, c.GID)
		b = be16(b, uint16(c.Arg1))
		b = be16(b, uint16(c.Arg2))
		for _, v := range c.Transform {
			b = be16(b, uint16(int16(v*16384)))
		}
	}
	return b
}

// Bytes assembles the font file.
func (b *Builder) Bytes() []byte {
	numGlyphs := len(b.Glyphs)

	glyf, loca := b.buildGlyfLoca()
	tables := map[string][]byte{
		"head": b.buildHead(),
		"maxp": buildMaxp(uint16(numGlyphs)),
		"hhea": b.buildHhea(),
		"hmtx": b.buildHmtx(),
		"loca": loca,
		"glyf": glyf,
		"cmap": b.buildCmap(),
	}
	for tag, data := range b.ExtraTables {
		tables[tag] = data
	}
	for tag := range b.OmitTables {
		delete(tables, tag)
	}

	// Fixed tag order keeps output deterministic.
	order := []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp"}
	for tag := range b.ExtraTables {
		order = append(order, tag)
	}
	var tags []string
	for _, tag := range order {
		if _, ok := tables[tag]; ok {
			tags = append(tags, tag)
		}
	}

	var out []byte
	out = be32(out, b.ScalerType)
	out = be16(out, uint16(len(tags)))
	out = be16(out, 0) // searchRange
	out = be16(out, 0) // entrySelector
	out = be16(out, 0) // rangeShift

	offset := 12 + 16*len(tags)
	for _, tag := range tags {
		out = append(out, tag...)
		out = be32(out, 0) // checksum
		out = be32(out, uint32(offset))
		out = be32(out, uint32(len(tables[tag])))
		offset += len(tables[tag])
	}
	for _, tag := range tags {
		out = append(out, tables[tag]...)
	}
	return out
}

func (b *Builder) buildHead() []byte {
	h := make([]byte, 54)
	binary.BigEndian.PutUint16(h[18:], b.UnitsPerEm)
	if b.LongLoca {
		binary.BigEndian.PutUint16(h[50:], 1)
	}
	return h
}

func buildMaxp(numGlyphs uint16) []byte {
	m := make([]byte, 6)
	binary.BigEndian.PutUint32(m, 0x00010000)
	binary.BigEndian.PutUint16(m[4:], numGlyphs)
	return m
}

func (b *Builder) buildHhea() []byte {
	h := make([]byte, 36)
	binary.BigEndian.PutUint16(h[4:], uint16(b.Ascent))
	binary.BigEndian.PutUint16(h[6:], uint16(b.Descent))
	binary.BigEndian.PutUint16(h[8:], uint16(b.LineGap))
	binary.BigEndian.PutUint16(h[34:], uint16(len(b.Advances)))
	return h
}

func (b *Builder) buildHmtx() []byte {
	var h []byte
	lsb := func(i int) int16 {
		if i < len(b.LSBs) {
			return b.LSBs[i]
		}
		return 0
	}
	for i, adv := range b.Advances {
		h = be16(h, adv)
		h = be16(h, uint16(lsb(i)))
	}
	for i := len(b.Advances); i < len(b.Glyphs); i++ {
		h = be16(h, uint16(lsb(i)))
	}
	return h
}

func (b *Builder) buildGlyfLoca() (glyf, loca []byte) {
	offsets := make([]uint32, 0, len(b.Glyphs)+1)
	offsets = append(offsets, 0)
	for _, g := range b.Glyphs {
		glyf = append(glyf, g...)
		if !b.LongLoca && len(glyf)%2 != 0 {
			glyf = append(glyf, 0)
		}
		offsets = append(offsets, uint32(len(glyf)))
	}
	for _, off := range offsets {
		if b.LongLoca {
			loca = be32(loca, off)
		} else {
			loca = be16(loca, uint16(off/2))
		}
	}
	return glyf, loca
}

func (b *Builder) buildCmap() []byte {
	var subs [][]byte
	var platforms [][2]uint16
	if b.Segments != nil {
		subs = append(subs, buildCmap4(b.Segments))
		platforms = append(platforms, [2]uint16{3, 1})
	}
	if b.Groups != nil {
		subs = append(subs, buildCmap12(b.Groups))
		platforms = append(platforms, [2]uint16{3, 10})
	}

	var out []byte
	out = be16(out, 0) // version
	out = be16(out, uint16(len(subs)))
	offset := 4 + 8*len(subs)
	for i, sub := range subs {
		out = be16(out, platforms[i][0])
		out = be16(out, platforms[i][1])
		out = be32(out, uint32(offset))
		offset += len(sub)
	}
	for _, sub := range subs {
		out = append(out, sub...)
	}
	return out
}

func buildCmap4(segments []Seg) []byte {
	// The sentinel segment is appended automatically.
	segs := make([]Seg, len(segments), len(segments)+1)
	copy(segs, segments)
	segs = append(segs, Seg{Start: 0xFFFF, End: 0xFFFF, Delta: 1})
	segCount := len(segs)

	var glyphIDs []uint16
	rangeOffsets := make([]uint16, segCount)
	for i, s := range segs {
		if s.GlyphIDs == nil {
			continue
		}
		// Self-relative offset from idRangeOffset[i] to this segment's
		// ids in the trailing glyphIdArray.
		rangeOffsets[i] = uint16(2*(segCount-i) + 2*len(glyphIDs))
		glyphIDs = append(glyphIDs, s.GlyphIDs...)
	}

	length := 14 + 2 + segCount*8 + len(glyphIDs)*2
	var out []byte
	out = be16(out, 4) // format
	out = be16(out, uint16(length))
	out = be16(out, 0) // language
	out = be16(out, uint16(segCount*2))
	out = be16(out, 0) // searchRange
	out = be16(out, 0) // entrySelector
	out = be16(out, 0) // rangeShift
	for _, s := range segs {
		out = be16(out, s.End)
	}
	out = be16(out, 0) // reservedPad
	for _, s := range segs {
		out = be16(out, s.Start)
	}
	for _, s := range segs {
		out = be16(out, uint16(s.Delta))
	}
	for _, ro := range rangeOffsets {
		out = be16(out, ro)
	}
	for _, g := range glyphIDs {
		out = be16(out, g)
	}
	return out
}

func buildCmap12(groups []Group) []byte {
	var out []byte
	out = be16(out, 12) // format
	out = be16(out, 0)  // reserved
	out = be32(out, uint32(16+12*len(groups)))
	out = be32(out, 0) // language
	out = be32(out, uint32(len(groups)))
	for _, g := range groups {
		out = be32(out, g.Start)
		out = be32(out, g.End)
		out = be32(out, g.StartGID)
	}
	return out
}

func be16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func be32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}
