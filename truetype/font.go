package truetype

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/fontmesh"
)

// Scaler types accepted in the sfnt header. Everything else (CFF 'OTTO',
// WOFF wrappers, TTC collections) is rejected.
const (
	scalerTrueType = 0x00010000
	scalerAppleTT  = 0x74727565 // 'true'
)

// requiredTables are the tables a glyph renderer cannot do without.
var requiredTables = []string{"head", "maxp", "hhea", "hmtx", "loca", "glyf", "cmap"}

// tableInfo locates one sfnt table inside the font data.
type tableInfo struct {
	offset uint32
	length uint32
}

// Font is a parsed TrueType font file. It owns the raw byte buffer and
// every derived table; all of it is immutable after Parse except the
// outline cache, which is mutex-guarded and insert-only, so a Font is
// safe for concurrent use.
type Font struct {
	r      reader
	tables map[string]tableInfo

	unitsPerEm  uint16
	longLoca    bool
	numGlyphs   uint16
	ascent      int16
	descent     int16
	lineGap     int16
	numHMetrics uint16

	glyf     tableInfo
	loca     []uint32
	advances []uint16
	lsbs     []int16
	cmap     charmap

	mu       sync.Mutex
	outlines map[uint16]*fontmesh.Outline
}

// Parse decodes the font file in data. The buffer is retained by the
// returned Font and must not be modified afterwards.
//
// Parse fails with [ErrBadHeader] for non-TrueType data, with a
// [MissingTableError] when a required table is absent, and with
// [ErrTruncated], [ErrLocaInconsistent] or [ErrUnsupportedCmap] when the
// required tables cannot be decoded.
func Parse(data []byte) (*Font, error) {
	f := &Font{
		r:        reader{data: data},
		outlines: make(map[uint16]*fontmesh.Outline),
	}
	if err := f.parseDirectory(); err != nil {
		return nil, err
	}
	if err := f.parseHead(); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(); err != nil {
		return nil, err
	}
	if err := f.parseHhea(); err != nil {
		return nil, err
	}
	if err := f.parseLoca(); err != nil {
		return nil, err
	}
	if err := f.parseHmtx(); err != nil {
		return nil, err
	}
	if err := f.parseCmap(); err != nil {
		return nil, err
	}
	if fontmesh.Logger().Enabled(context.Background(), slog.LevelWarn) {
		f.auditCmap()
	}
	fontmesh.Logger().Debug("truetype: parsed font",
		"glyphs", f.numGlyphs,
		"unitsPerEm", f.unitsPerEm,
		"tables", len(f.tables))
	return f, nil
}

// parseDirectory reads the sfnt header and the table records into the
// tag -> location map. Unknown tags are preserved but never consulted.
func (f *Font) parseDirectory() error {
	scaler, err := f.r.u32(0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if scaler != scalerTrueType && scaler != scalerAppleTT {
		return fmt.Errorf("%w: scaler type 0x%08x", ErrBadHeader, scaler)
	}
	numTables, err := f.r.u16(4)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	f.tables = make(map[string]tableInfo, numTables)
	// Each record is tag, checksum, offset, length; the checksum is not
	// verified. Records start after the 6 bytes of search parameters.
	for i := range int(numTables) {
		rec := 12 + i*16
		if err := f.r.check(rec, 16); err != nil {
			return fmt.Errorf("%w: table record %d: %v", ErrBadHeader, i, err)
		}
		tag := string(f.r.data[rec : rec+4])
		offset, _ := f.r.u32(rec + 8)
		length, _ := f.r.u32(rec + 12)
		if int64(offset)+int64(length) > int64(f.r.len()) {
			return fmt.Errorf("table %q [%d, %d): %w", tag, offset, offset+length, ErrTruncated)
		}
		f.tables[tag] = tableInfo{offset: offset, length: length}
	}

	for _, tag := range requiredTables {
		if _, ok := f.tables[tag]; !ok {
			return &MissingTableError{Tag: tag}
		}
	}
	f.glyf = f.tables["glyf"]
	return nil
}

func (f *Font) parseHead() error {
	head := f.tables["head"]
	upem, err := f.r.u16(int(head.offset) + 18)
	if err != nil {
		return err
	}
	if upem == 0 {
		return fmt.Errorf("%w: unitsPerEm is zero", ErrBadHeader)
	}
	f.unitsPerEm = upem

	// 0 selects the short loca format; any non-zero value the long one.
	indexToLoc, err := f.r.i16(int(head.offset) + 50)
	if err != nil {
		return err
	}
	f.longLoca = indexToLoc != 0
	return nil
}

func (f *Font) parseMaxp() error {
	maxp := f.tables["maxp"]
	n, err := f.r.u16(int(maxp.offset) + 4)
	if err != nil {
		return err
	}
	f.numGlyphs = n
	return nil
}

func (f *Font) parseHhea() error {
	hhea := int(f.tables["hhea"].offset)
	var err error
	if f.ascent, err = f.r.i16(hhea + 4); err != nil {
		return err
	}
	if f.descent, err = f.r.i16(hhea + 6); err != nil {
		return err
	}
	if f.lineGap, err = f.r.i16(hhea + 8); err != nil {
		return err
	}
	n, err := f.r.u16(hhea + 34)
	if err != nil {
		return err
	}
	// Clamp into [1, numGlyphs]; fonts with 0 or inflated values exist.
	if n == 0 {
		fontmesh.Logger().Warn("truetype: numberOfHMetrics is zero, clamping to 1")
		n = 1
	}
	if f.numGlyphs > 0 && n > f.numGlyphs {
		fontmesh.Logger().Warn("truetype: numberOfHMetrics exceeds glyph count",
			"numberOfHMetrics", n, "numGlyphs", f.numGlyphs)
		n = f.numGlyphs
	}
	f.numHMetrics = n
	return nil
}

// UnitsPerEm returns the number of font units per em.
func (f *Font) UnitsPerEm() uint16 { return f.unitsPerEm }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() uint16 { return f.numGlyphs }

// LineMetrics returns the hhea ascent, descent and line gap in font
// units. Ascent is positive above the baseline and descent is typically
// negative, as stored in the font.
func (f *Font) LineMetrics() (ascent, descent, lineGap int16) {
	return f.ascent, f.descent, f.lineGap
}
