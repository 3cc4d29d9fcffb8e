package truetype

import (
	"fmt"
	"sort"

	"github.com/gogpu/fontmesh"
)

// charmap resolves code points through whichever usable cmap subtable the
// font carries. Format 12 (sparse 32-bit groups) is preferred because it
// covers code points beyond the BMP; format 4 (segmented BMP arrays) is
// the fallback. When both are present they must agree on the BMP; a
// disagreement is a font defect, reported via the logger but never fatal.
type charmap struct {
	groups []cmapGroup // format 12, nil if absent
	seg    *cmapFormat4
}

// cmapGroup is one format 12 group: a contiguous run of code points
// mapped to a contiguous run of glyph ids.
type cmapGroup struct {
	startChar uint32
	endChar   uint32
	startGID  uint32
}

// cmapFormat4 keeps the parallel segment arrays plus the absolute file
// offset of the idRangeOffset array, which the lookup needs because
// idRangeOffset values are self-relative byte offsets.
type cmapFormat4 struct {
	endCode        []uint16
	startCode      []uint16
	idDelta        []int16
	idRangeOffset  []uint16
	rangeOffsetPos int
}

// parseCmap walks the encoding records and remembers the first format 12
// and the first format 4 subtable encountered, in record order.
func (f *Font) parseCmap() error {
	cm := int(f.tables["cmap"].offset)
	numRecords, err := f.r.u16(cm + 2)
	if err != nil {
		return err
	}

	for i := range int(numRecords) {
		rec := cm + 4 + i*8
		subOff, err := f.r.u32(rec + 4)
		if err != nil {
			return err
		}
		sub := cm + int(subOff)
		format, err := f.r.u16(sub)
		if err != nil {
			return err
		}
		switch format {
		case 4:
			if f.cmap.seg == nil {
				if err := f.parseCmap4(sub); err != nil {
					return err
				}
			}
		case 12:
			if f.cmap.groups == nil {
				if err := f.parseCmap12(sub); err != nil {
					return err
				}
			}
		}
	}

	if f.cmap.groups == nil && f.cmap.seg == nil {
		return ErrUnsupportedCmap
	}
	return nil
}

func (f *Font) parseCmap12(sub int) error {
	numGroups, err := f.r.u32(sub + 12)
	if err != nil {
		return err
	}
	// Bound the allocation by the bytes actually present.
	if int64(numGroups)*12 > int64(f.r.len()) {
		return fmt.Errorf("%w: format 12 subtable claims %d groups", ErrTruncated, numGroups)
	}
	groups := make([]cmapGroup, numGroups)
	for i := range groups {
		g := sub + 16 + i*12
		if err := f.r.check(g, 12); err != nil {
			return err
		}
		groups[i].startChar, _ = f.r.u32(g)
		groups[i].endChar, _ = f.r.u32(g + 4)
		groups[i].startGID, _ = f.r.u32(g + 8)
	}
	f.cmap.groups = groups
	return nil
}

func (f *Font) parseCmap4(sub int) error {
	segCountX2, err := f.r.u16(sub + 6)
	if err != nil {
		return err
	}
	segCount := int(segCountX2) / 2
	if segCount == 0 {
		return fmt.Errorf("%w: format 4 subtable with no segments", ErrUnsupportedCmap)
	}

	endPos := sub + 14
	startPos := endPos + segCount*2 + 2 // skip reservedPad
	deltaPos := startPos + segCount*2
	rangePos := deltaPos + segCount*2

	seg := &cmapFormat4{
		endCode:        make([]uint16, segCount),
		startCode:      make([]uint16, segCount),
		idDelta:        make([]int16, segCount),
		idRangeOffset:  make([]uint16, segCount),
		rangeOffsetPos: rangePos,
	}
	for i := range segCount {
		if seg.endCode[i], err = f.r.u16(endPos + i*2); err != nil {
			return err
		}
		if seg.startCode[i], err = f.r.u16(startPos + i*2); err != nil {
			return err
		}
		if seg.idDelta[i], err = f.r.i16(deltaPos + i*2); err != nil {
			return err
		}
		if seg.idRangeOffset[i], err = f.r.u16(rangePos + i*2); err != nil {
			return err
		}
	}
	f.cmap.seg = seg
	return nil
}

// GlyphIndex maps a Unicode code point to a glyph id. Unmapped code
// points return 0, the .notdef glyph; GlyphIndex never fails.
func (f *Font) GlyphIndex(cp rune) uint16 {
	if cp < 0 {
		return 0
	}
	if f.cmap.groups != nil {
		return f.lookup12(uint32(cp))
	}
	if f.cmap.seg != nil {
		return f.lookup4(uint32(cp))
	}
	return 0
}

func (f *Font) lookup12(cp uint32) uint16 {
	groups := f.cmap.groups
	// First group that could contain cp.
	i := sort.Search(len(groups), func(i int) bool { return groups[i].endChar >= cp })
	if i == len(groups) || groups[i].startChar > cp {
		return 0
	}
	return uint16(groups[i].startGID + (cp - groups[i].startChar))
}

func (f *Font) lookup4(cp uint32) uint16 {
	if cp > 0xFFFF {
		return 0
	}
	c := uint16(cp)
	seg := f.cmap.seg
	// Smallest segment with endCode >= cp; the 0xFFFF sentinel guarantees
	// one exists in well-formed fonts.
	i := sort.Search(len(seg.endCode), func(i int) bool { return seg.endCode[i] >= c })
	if i == len(seg.endCode) || seg.startCode[i] > c {
		return 0
	}
	if seg.idRangeOffset[i] == 0 {
		// idDelta arithmetic is signed and wraps modulo 2^16.
		return c + uint16(seg.idDelta[i])
	}
	// idRangeOffset is a byte offset relative to its own position in the
	// idRangeOffset array, pointing into the trailing glyphIdArray.
	addr := seg.rangeOffsetPos + i*2 + int(seg.idRangeOffset[i]) + int(c-seg.startCode[i])*2
	g, err := f.r.u16(addr)
	if err != nil || g == 0 {
		return 0
	}
	return g + uint16(seg.idDelta[i])
}

// auditCmap cross-checks the two subtables over the BMP range covered by
// the format 12 groups. Called only for diagnostics; disagreement is a
// font defect but not an error.
func (f *Font) auditCmap() {
	if f.cmap.groups == nil || f.cmap.seg == nil {
		return
	}
	for _, g := range f.cmap.groups {
		if g.startChar > 0xFFFF {
			break
		}
		for cp := g.startChar; cp <= g.endChar && cp <= 0xFFFF; cp++ {
			if g4, g12 := f.lookup4(cp), f.lookup12(cp); g4 != 0 && g4 != g12 {
				fontmesh.Logger().Warn("truetype: cmap subtables disagree",
					"codepoint", cp, "format4", g4, "format12", g12)
				return
			}
		}
	}
}
