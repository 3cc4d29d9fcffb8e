package fonttest

// Glyph ids of the standard test font, in order.
const (
	GIDNotdef = iota
	GIDSpace
	GIDLetterA
	GIDRing
	GIDAccented
	GIDAligned
	GIDCycleA
	GIDCycleB
	GIDSelfCycle
)

// Standard returns a builder for the shared test font: a 1000 upem face
// with a blank space, a two-contour letter, a curved ring, compound
// glyphs in both argument modes, and deliberately cyclic compounds.
//
//	gid 0 .notdef  square, 1 contour, advance 500
//	gid 1 space    blank, advance 600
//	gid 2 'A'      outer + counter square, advance 1000
//	gid 3 'o'/heart ring of 4 quads, advance 550
//	gid 4 'E-acute' compound: gid2 + gid3 translated (XY args)
//	gid 5          compound: gid2 + gid3 via point alignment
//	gid 6, 7       mutually recursive compounds (defective)
//	gid 8          self-referential compound (defective)
//
// numberOfHMetrics is 4, so gids 4+ repeat gid 3's advance. The format 4
// and format 12 cmaps agree on the BMP; U+1D49E maps through format 12
// only.
func Standard() *Builder {
	b := New()

	square := []GlyphPoint{
		{X: 100, Y: 0, On: true},
		{X: 700, Y: 0, On: true},
		{X: 700, Y: 700, On: true},
		{X: 100, Y: 700, On: true},
	}
	outer := []GlyphPoint{
		{X: 0, Y: 0, On: true},
		{X: 600, Y: 0, On: true},
		{X: 600, Y: 600, On: true},
		{X: 0, Y: 600, On: true},
	}
	counter := []GlyphPoint{
		{X: 200, Y: 200, On: true},
		{X: 200, Y: 400, On: true},
		{X: 400, Y: 400, On: true},
		{X: 400, Y: 200, On: true},
	}
	ring := []GlyphPoint{
		{X: 250, Y: 0, On: true},
		{X: 500, Y: 0, On: false},
		{X: 500, Y: 250, On: true},
		{X: 500, Y: 500, On: false},
		{X: 250, Y: 500, On: true},
		{X: 0, Y: 500, On: false},
		{X: 0, Y: 250, On: true},
		{X: 0, Y: 0, On: false},
	}

	b.Glyphs = [][]byte{
		GIDNotdef:  SimpleGlyph(square),
		GIDSpace:   nil,
		GIDLetterA: SimpleGlyph(outer, counter),
		GIDRing:    SimpleGlyph(ring),
		GIDAccented: CompoundGlyph(
			Component{GID: GIDLetterA, Flags: FlagArgsAreXY},
			Component{GID: GIDRing, Flags: FlagArgsAreXY, Arg1: 200, Arg2: 650},
		),
		GIDAligned: CompoundGlyph(
			Component{GID: GIDLetterA, Flags: FlagArgsAreXY},
			// Align ring point 0 (250, 0) onto assembled point 2 (600, 600).
			Component{GID: GIDRing, Arg1: 0, Arg2: 2},
		),
		GIDCycleA:    CompoundGlyph(Component{GID: GIDCycleB, Flags: FlagArgsAreXY}),
		GIDCycleB:    CompoundGlyph(Component{GID: GIDCycleA, Flags: FlagArgsAreXY}),
		GIDSelfCycle: CompoundGlyph(Component{GID: GIDSelfCycle, Flags: FlagArgsAreXY}),
	}
	b.Advances = []uint16{500, 600, 1000, 550}
	b.LSBs = []int16{100, 0, 0, 0, 0, 0, 0, 0, 0}

	b.Segments = []Seg{
		{Start: 0x20, End: 0x20, Delta: GIDSpace - 0x20},
		{Start: 0x41, End: 0x41, Delta: GIDLetterA - 0x41},
		{Start: 0x6F, End: 0x6F, GlyphIDs: []uint16{GIDRing}},
		{Start: 0xC9, End: 0xC9, Delta: GIDAccented - 0xC9},
		{Start: 0x2764, End: 0x2764, Delta: GIDRing - 0x2764},
	}
	b.Groups = []Group{
		{Start: 0x20, End: 0x20, StartGID: GIDSpace},
		{Start: 0x41, End: 0x41, StartGID: GIDLetterA},
		{Start: 0x6F, End: 0x6F, StartGID: GIDRing},
		{Start: 0xC9, End: 0xC9, StartGID: GIDAccented},
		{Start: 0x2764, End: 0x2764, StartGID: GIDRing},
		{Start: 0x1D49E, End: 0x1D49E, StartGID: GIDRing},
	}
	return b
}
