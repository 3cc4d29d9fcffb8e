// Package truetype decodes sfnt-wrapped TrueType font files into the
// canonical outline and metric data the fontmesh tessellator consumes.
//
// The decoder reads only the tables a glyph renderer needs: head, maxp,
// hhea, hmtx, loca, glyf, and cmap. All of them are required; fonts with
// CFF outlines or without a usable cmap subtable are rejected at [Parse]
// time. Hinting instructions are skipped, not interpreted.
//
// # Usage
//
//	font, err := truetype.Parse(data)
//	if err != nil { ... }
//	gid := font.GlyphIndex('A')
//	outline, err := font.Outline(gid)
//	adv, lsb := font.HMetric(gid)
//
// Character mapping prefers a format 12 cmap subtable (full Unicode
// range) and falls back to format 4 (BMP only). Unmapped code points
// resolve to glyph 0 (.notdef) rather than erroring.
//
// Outlines are decoded lazily and memoized per glyph id, including the
// recursive lookups compound glyphs perform. The cache is insert-only and
// mutex-guarded, so a *Font is safe for concurrent use after Parse.
//
// All multi-byte fields in the file are big-endian; compound transform
// coefficients are F2Dot14 fixed point (int16 / 16384).
package truetype
