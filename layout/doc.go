// Package layout walks text as a simple left-to-right pen over glyph
// meshes.
//
// A [Pen] maps code points to glyph ids, tessellates each glyph once
// (memoized per pen), and yields baseline origins in pixels: after each
// glyph the pen advances by the glyph's advance width scaled to the font
// size, plus any letter spacing; a newline returns to the start X and
// drops by the font's scaled line gap. Advances accumulate in 26.6 fixed
// point so long lines don't drift.
//
// Input is NFC-normalized first, so decomposed sequences such as
// "E" + U+0301 hit the font's precomposed glyphs where they exist.
//
// Glyph mesh coordinates stay in font units with Y growing upward; the
// origin the pen yields is the baseline, and the consumer (or the GPU
// vertex stage, see gpucore.DrawParams) applies the scale and Y-flip.
// Shaping (ligatures, kerning, bidi) is out of scope.
package layout
