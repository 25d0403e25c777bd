package l1qa

// The bqa_radsat band flags radiometric saturation per instrument band:
// bit N-1 set means band N saturated, for bands 1 through 11.

// BandSaturated reports whether the radsat QA value flags the given band
// number as saturated. Landsat 7 thermal designators 61 and 62 address
// bands 6 and 9. Band numbers outside 1-11 report false.
func BandSaturated(v uint16, band int) bool {
	switch band {
	case 61:
		band = 6
	case 62:
		band = 9
	}
	if band < 1 || band > 11 {
		return false
	}
	return v&(1<<(band-1)) != 0
}
