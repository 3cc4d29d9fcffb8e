package truetype

import "fmt"

// parseLoca materializes the numGlyphs+1 byte offsets into glyf. Short
// format stores offsets halved as uint16; long format stores them
// directly as uint32. The range [loca[i], loca[i+1]) holds glyph i's
// description; an empty range is a blank glyph.
func (f *Font) parseLoca() error {
	loca := f.tables["loca"]
	n := int(f.numGlyphs) + 1

	width := 2
	if f.longLoca {
		width = 4
	}
	if int(loca.length) < n*width {
		return fmt.Errorf("loca: %d offsets need %d bytes, table has %d: %w",
			n, n*width, loca.length, ErrTruncated)
	}

	f.loca = make([]uint32, n)
	base := int(loca.offset)
	for i := range n {
		if f.longLoca {
			v, err := f.r.u32(base + i*4)
			if err != nil {
				return err
			}
			f.loca[i] = v
		} else {
			v, err := f.r.u16(base + i*2)
			if err != nil {
				return err
			}
			f.loca[i] = uint32(v) * 2
		}
	}

	for i := 1; i < n; i++ {
		if f.loca[i] < f.loca[i-1] {
			return fmt.Errorf("%w: offset %d (%d) below offset %d (%d)",
				ErrLocaInconsistent, i, f.loca[i], i-1, f.loca[i-1])
		}
	}
	if f.loca[n-1] > f.glyf.length {
		return fmt.Errorf("%w: final offset %d past glyf length %d",
			ErrLocaInconsistent, f.loca[n-1], f.glyf.length)
	}
	return nil
}

// glyphRange returns the byte range of gid's description within glyf.
func (f *Font) glyphRange(gid uint16) (start, end uint32) {
	return f.loca[gid], f.loca[gid+1]
}
