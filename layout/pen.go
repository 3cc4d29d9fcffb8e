package layout

import (
	"iter"
	"math"

	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/fontmesh"
	"github.com/gogpu/fontmesh/truetype"
)

// GlyphMesh bundles the tessellated geometry and metrics of one glyph.
// Meshes are cached per Pen and shared across occurrences of the same
// glyph; treat them as read-only.
type GlyphMesh struct {
	// Wireframe is the glyph outline as a closed line list.
	Wireframe fontmesh.WireframeMesh

	// Fill is the stencil-then-cover fill geometry.
	Fill fontmesh.StencilCoverMesh

	// AdvanceWidth is the horizontal advance in font units.
	AdvanceWidth uint16
}

// PlacedGlyph is one glyph positioned by the pen. X, Y are the baseline
// origin in pixels, Y growing downward.
type PlacedGlyph struct {
	GID  uint16
	Rune rune
	X, Y float64
	Mesh *GlyphMesh
}

// Config configures a Pen. The zero value of any field selects its
// default.
type Config struct {
	// FontSizePx is the em size in pixels. Default: 16.
	FontSizePx float64

	// LetterSpacing is extra advance between glyphs in pixels. Default: 0.
	LetterSpacing float64

	// LineSpacing is a multiplier for the newline advance. Default: 1.0.
	LineSpacing float64

	// Tessellate controls flattening and cover-quad generation.
	Tessellate fontmesh.Options
}

// DefaultConfig returns the default pen configuration.
func DefaultConfig() Config {
	return Config{
		FontSizePx:  16,
		LineSpacing: 1.0,
		Tessellate:  fontmesh.DefaultOptions(),
	}
}

// Pen lays out text left to right along a baseline. A Pen is cheap to
// create; the glyph mesh cache is its only state. It is not safe for
// concurrent use.
type Pen struct {
	font   *truetype.Font
	config Config
	scale  float64 // pixels per font unit

	meshes map[uint16]*GlyphMesh
}

// NewPen creates a pen over font. Zero config fields take defaults.
func NewPen(font *truetype.Font, config Config) *Pen {
	def := DefaultConfig()
	if config.FontSizePx <= 0 {
		config.FontSizePx = def.FontSizePx
	}
	if config.LineSpacing <= 0 {
		config.LineSpacing = def.LineSpacing
	}
	return &Pen{
		font:   font,
		config: config,
		scale:  config.FontSizePx / float64(font.UnitsPerEm()),
		meshes: make(map[uint16]*GlyphMesh),
	}
}

// LineAdvance returns the vertical advance a newline applies in pixels:
// the font's line gap scaled to the pen size, times the configured line
// spacing.
func (p *Pen) LineAdvance() float64 {
	_, _, lineGap := p.font.LineMetrics()
	return float64(lineGap) * p.scale * p.config.LineSpacing
}

// Glyphs yields a PlacedGlyph for every code point of text but newlines,
// starting at the baseline origin (originX, originY) in pixels. Unmapped
// code points render as glyph 0 (.notdef); newlines emit nothing and
// move the pen to the next baseline. Iteration stops early with a
// non-nil error only if the font data turns out undecodable for some
// glyph.
//
// The text is NFC-normalized before mapping, so decomposed accent
// sequences use the font's precomposed (often compound) glyphs.
func (p *Pen) Glyphs(text string, originX, originY float64) iter.Seq2[PlacedGlyph, error] {
	return func(yield func(PlacedGlyph, error) bool) {
		x := floatToFixed(originX)
		y := originY
		spacing := floatToFixed(p.config.LetterSpacing)

		for _, r := range norm.NFC.String(text) {
			if r == '\n' {
				x = floatToFixed(originX)
				y += p.LineAdvance()
				continue
			}
			gid := p.font.GlyphIndex(r)
			mesh, err := p.mesh(gid)
			if err != nil {
				yield(PlacedGlyph{GID: gid, Rune: r}, err)
				return
			}
			g := PlacedGlyph{
				GID:  gid,
				Rune: r,
				X:    fixedToFloat(x),
				Y:    y,
				Mesh: mesh,
			}
			if !yield(g, nil) {
				return
			}
			x += floatToFixed(float64(mesh.AdvanceWidth)*p.scale) + spacing
		}
	}
}

// Advance returns the total advance width of text in pixels, including
// letter spacing, without tessellating anything. Newlines reset the
// running width; the widest line wins.
func (p *Pen) Advance(text string) float64 {
	var line, widest fixed.Int26_6
	spacing := floatToFixed(p.config.LetterSpacing)
	for _, r := range norm.NFC.String(text) {
		if r == '\n' {
			if line > widest {
				widest = line
			}
			line = 0
			continue
		}
		adv, _ := p.font.HMetric(p.font.GlyphIndex(r))
		line += floatToFixed(float64(adv)*p.scale) + spacing
	}
	if line > widest {
		widest = line
	}
	return fixedToFloat(widest)
}

// mesh returns the cached mesh for gid, tessellating on first use.
func (p *Pen) mesh(gid uint16) (*GlyphMesh, error) {
	if m, ok := p.meshes[gid]; ok {
		return m, nil
	}
	outline, err := p.font.Outline(gid)
	if err != nil {
		return nil, err
	}
	adv, _ := p.font.HMetric(gid)
	m := &GlyphMesh{
		Wireframe:    fontmesh.Wireframe(outline, p.config.Tessellate),
		Fill:         fontmesh.StencilCover(outline, p.config.Tessellate),
		AdvanceWidth: adv,
	}
	p.meshes[gid] = m
	fontmesh.Logger().Debug("layout: tessellated glyph",
		"gid", gid,
		"lineIndices", len(m.Wireframe.LineIndices),
		"fanIndices", len(m.Fill.FanIndices))
	return m, nil
}

// floatToFixed converts pixels to 26.6 fixed point, rounding to the
// nearest 1/64.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// fixedToFloat converts 26.6 fixed point back to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
