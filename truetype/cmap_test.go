package truetype

import (
	"errors"
	"testing"

	"github.com/gogpu/fontmesh/internal/fonttest"
)

func TestGlyphIndex(t *testing.T) {
	font, err := Parse(fonttest.Standard().Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name string
		cp   rune
		want uint16
	}{
		{"space", 0x20, fonttest.GIDSpace},
		{"letter", 'A', fonttest.GIDLetterA},
		{"ring", 'o', fonttest.GIDRing},
		{"accented", 0xC9, fonttest.GIDAccented},
		{"heart", 0x2764, fonttest.GIDRing},
		{"beyond BMP", 0x1D49E, fonttest.GIDRing},
		{"unmapped", 'B', 0},
		{"unmapped high", 0x10FFFF, 0},
		{"negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := font.GlyphIndex(tt.cp); got != tt.want {
				t.Errorf("GlyphIndex(%#x) = %d, want %d", tt.cp, got, tt.want)
			}
		})
	}
}

func TestGlyphIndexFormat4Only(t *testing.T) {
	b := fonttest.Standard()
	b.Groups = nil
	font, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name string
		cp   rune
		want uint16
	}{
		{"delta segment", 'A', fonttest.GIDLetterA},
		{"range offset segment", 'o', fonttest.GIDRing},
		{"high BMP delta wrap", 0x2764, fonttest.GIDRing},
		{"beyond BMP unreachable", 0x1D49E, 0},
		{"unmapped", 'Q', 0},
		{"sentinel", 0xFFFF, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := font.GlyphIndex(tt.cp); got != tt.want {
				t.Errorf("GlyphIndex(%#x) = %d, want %d", tt.cp, got, tt.want)
			}
		})
	}
}

func TestGlyphIndexFormat12Only(t *testing.T) {
	b := fonttest.Standard()
	b.Segments = nil
	font, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := font.GlyphIndex(0x1D49E); got != fonttest.GIDRing {
		t.Errorf("GlyphIndex(U+1D49E) = %d, want %d", got, fonttest.GIDRing)
	}
	if got := font.GlyphIndex('A'); got != fonttest.GIDLetterA {
		t.Errorf("GlyphIndex('A') = %d, want %d", got, fonttest.GIDLetterA)
	}
}

// TestCmapFormatsAgree checks that format 4 and format 12 resolve every
// BMP code point in their shared domain identically.
func TestCmapFormatsAgree(t *testing.T) {
	b4 := fonttest.Standard()
	b4.Groups = nil
	font4, err := Parse(b4.Bytes())
	if err != nil {
		t.Fatalf("Parse format 4: %v", err)
	}

	b12 := fonttest.Standard()
	b12.Segments = nil
	font12, err := Parse(b12.Bytes())
	if err != nil {
		t.Fatalf("Parse format 12: %v", err)
	}

	for cp := rune(0); cp <= 0xFFFF; cp++ {
		g4 := font4.GlyphIndex(cp)
		g12 := font12.GlyphIndex(cp)
		if g4 != g12 {
			t.Fatalf("GlyphIndex(%#x): format 4 = %d, format 12 = %d", cp, g4, g12)
		}
	}
}

func TestParseUnsupportedCmap(t *testing.T) {
	b := fonttest.Standard()
	b.Segments = nil
	b.Groups = nil
	if _, err := Parse(b.Bytes()); !errors.Is(err, ErrUnsupportedCmap) {
		t.Errorf("Parse = %v, want ErrUnsupportedCmap", err)
	}
}
