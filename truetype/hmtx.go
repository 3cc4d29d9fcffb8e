package truetype

// parseHmtx materializes the advance and left-side-bearing arrays. The
// table stores numberOfHMetrics (advance, lsb) pairs followed by bare
// lsbs for the remaining glyphs; trailing glyphs reuse the last advance.
func (f *Font) parseHmtx() error {
	hmtx := int(f.tables["hmtx"].offset)
	nm := int(f.numHMetrics)
	ng := int(f.numGlyphs)

	f.advances = make([]uint16, nm)
	f.lsbs = make([]int16, ng)

	pos := hmtx
	for i := range nm {
		adv, err := f.r.u16(pos)
		if err != nil {
			return err
		}
		lsb, err := f.r.i16(pos + 2)
		if err != nil {
			return err
		}
		f.advances[i] = adv
		if i < ng {
			f.lsbs[i] = lsb
		}
		pos += 4
	}
	for i := nm; i < ng; i++ {
		lsb, err := f.r.i16(pos)
		if err != nil {
			return err
		}
		f.lsbs[i] = lsb
		pos += 2
	}
	return nil
}

// HMetric returns the advance width and left side bearing of gid in font
// units. For gid >= numberOfHMetrics the advance saturates to the last
// stored one, per the hmtx repetition rule. Out-of-range gids return the
// zero metric.
func (f *Font) HMetric(gid uint16) (advance uint16, lsb int16) {
	if gid >= f.numGlyphs {
		return 0, 0
	}
	if int(gid) < len(f.advances) {
		advance = f.advances[gid]
	} else {
		advance = f.advances[len(f.advances)-1]
	}
	return advance, f.lsbs[gid]
}
