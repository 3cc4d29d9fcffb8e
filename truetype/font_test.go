package truetype

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/fontmesh/internal/fonttest"
)

// tableOffset finds a table's byte offset by scanning the directory.
func tableOffset(t *testing.T, data []byte, tag string) int {
	t.Helper()
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	for i := range numTables {
		rec := 12 + i*16
		if string(data[rec:rec+4]) == tag {
			return int(binary.BigEndian.Uint32(data[rec+8:]))
		}
	}
	t.Fatalf("table %q not found", tag)
	return 0
}

func TestParseStandard(t *testing.T) {
	font, err := Parse(fonttest.Standard().Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := font.UnitsPerEm(); got != 1000 {
		t.Errorf("UnitsPerEm = %d, want 1000", got)
	}
	if got := font.NumGlyphs(); got != 9 {
		t.Errorf("NumGlyphs = %d, want 9", got)
	}
	ascent, descent, lineGap := font.LineMetrics()
	if ascent != 800 || descent != -200 || lineGap != 90 {
		t.Errorf("LineMetrics = %d, %d, %d, want 800, -200, 90", ascent, descent, lineGap)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrBadHeader},
		{"wrong scaler", []byte{0x4F, 0x54, 0x54, 0x4F, 0x00, 0x00}, ErrBadHeader},
		{"header cut short", []byte{0x00, 0x01, 0x00, 0x00, 0x00}, ErrBadHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Parse = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseAppleScalerAccepted(t *testing.T) {
	b := fonttest.Standard()
	b.ScalerType = 0x74727565 // 'true'
	if _, err := Parse(b.Bytes()); err != nil {
		t.Errorf("Parse rejected 'true' scaler: %v", err)
	}
}

func TestParseMissingTable(t *testing.T) {
	for _, tag := range []string{"head", "maxp", "hhea", "hmtx", "loca", "glyf", "cmap"} {
		t.Run(tag, func(t *testing.T) {
			b := fonttest.Standard()
			b.OmitTables = map[string]bool{tag: true}
			_, err := Parse(b.Bytes())
			var missing *MissingTableError
			if !errors.As(err, &missing) {
				t.Fatalf("Parse = %v, want MissingTableError", err)
			}
			if missing.Tag != tag {
				t.Errorf("missing tag %q, want %q", missing.Tag, tag)
			}
		})
	}
}

func TestParseTruncatedTableRecord(t *testing.T) {
	// Cutting the tail of the file loses table bytes while the directory
	// stays intact; the directory's offset+length validation must catch it.
	data := fonttest.Standard().Bytes()
	if _, err := Parse(data[:len(data)-10]); !errors.Is(err, ErrTruncated) {
		t.Errorf("Parse = %v, want ErrTruncated", err)
	}
}

func TestParseZeroUnitsPerEm(t *testing.T) {
	b := fonttest.Standard()
	b.UnitsPerEm = 0
	if _, err := Parse(b.Bytes()); !errors.Is(err, ErrBadHeader) {
		t.Errorf("Parse = %v, want ErrBadHeader", err)
	}
}

func TestParseLocaInconsistent(t *testing.T) {
	t.Run("non-monotone", func(t *testing.T) {
		data := fonttest.Standard().Bytes()
		loca := tableOffset(t, data, "loca")
		// Short-format entries; make the second offset larger than the
		// third.
		binary.BigEndian.PutUint16(data[loca+2:], 0x7FFF)
		if _, err := Parse(data); !errors.Is(err, ErrLocaInconsistent) {
			t.Errorf("Parse = %v, want ErrLocaInconsistent", err)
		}
	})
	t.Run("past glyf end", func(t *testing.T) {
		b := fonttest.Standard()
		data := b.Bytes()
		loca := tableOffset(t, data, "loca")
		// 9 glyphs -> 10 entries; the final one sits at loca+18.
		binary.BigEndian.PutUint16(data[loca+18:], 0x7FFF)
		if _, err := Parse(data); !errors.Is(err, ErrLocaInconsistent) {
			t.Errorf("Parse = %v, want ErrLocaInconsistent", err)
		}
	})
}

func TestParseLongLoca(t *testing.T) {
	b := fonttest.Standard()
	b.LongLoca = true
	font, err := Parse(b.Bytes())
	if err != nil {
		t.Fatalf("Parse long loca: %v", err)
	}
	outline, err := font.Outline(fonttest.GIDLetterA)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if outline.NumContours() != 2 {
		t.Errorf("NumContours = %d, want 2", outline.NumContours())
	}
}

func TestHMetric(t *testing.T) {
	font, err := Parse(fonttest.Standard().Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name    string
		gid     uint16
		advance uint16
		lsb     int16
	}{
		{"notdef", fonttest.GIDNotdef, 500, 100},
		{"space", fonttest.GIDSpace, 600, 0},
		{"letter", fonttest.GIDLetterA, 1000, 0},
		{"last metric", fonttest.GIDRing, 550, 0},
		{"saturated compound", fonttest.GIDAccented, 550, 0},
		{"saturated tail", fonttest.GIDSelfCycle, 550, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, lsb := font.HMetric(tt.gid)
			if advance != tt.advance || lsb != tt.lsb {
				t.Errorf("HMetric(%d) = %d, %d, want %d, %d",
					tt.gid, advance, lsb, tt.advance, tt.lsb)
			}
		})
	}

	// The repetition rule: every gid past numberOfHMetrics-1 repeats the
	// last stored advance.
	lastAdv, _ := font.HMetric(3)
	for gid := uint16(4); gid < font.NumGlyphs(); gid++ {
		if adv, _ := font.HMetric(gid); adv != lastAdv {
			t.Errorf("HMetric(%d) advance = %d, want %d", gid, adv, lastAdv)
		}
	}

	if adv, lsb := font.HMetric(1000); adv != 0 || lsb != 0 {
		t.Errorf("out-of-range HMetric = %d, %d, want zeros", adv, lsb)
	}
}
