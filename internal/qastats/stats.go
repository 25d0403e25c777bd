// Package qastats tallies QA band populations and summarizes per-row cloud
// profiles for reporting. Cover percentages follow the scene-metadata
// convention of excluding fill from the denominator.
package qastats

import (
	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/l1qa"
	"github.com/eros-data/landsat.qa/internal/pixelqa"
)

// ClassCount is the population of one class value.
type ClassCount struct {
	Value    uint8
	Name     string
	Count    int
	Fraction float64 // of all pixels, fill included
}

// ClassStats summarizes a class QA band.
type ClassStats struct {
	Total   int
	Fill    int
	Unknown int // pixels outside the defined class values

	// Counts holds one entry per defined class value, in value order.
	Counts []ClassCount

	// CloudCover is the percent of non-fill pixels classified cloud.
	// CloudShadowCover additionally includes cloud shadow. An all-fill
	// band reports 0 for both.
	CloudCover       float64
	CloudShadowCover float64
}

// CountClasses tallies a class QA band.
func CountClasses(data []uint8) *ClassStats {
	var counts [256]int
	for _, v := range data {
		counts[v]++
	}

	st := &ClassStats{Total: len(data), Fill: counts[classqa.Fill]}

	known := 0
	for _, v := range classqa.Values {
		c := ClassCount{Value: v, Name: classqa.Name(v), Count: counts[v]}
		if st.Total > 0 {
			c.Fraction = float64(c.Count) / float64(st.Total)
		}
		st.Counts = append(st.Counts, c)
		known += counts[v]
	}
	st.Unknown = st.Total - known

	if valid := st.Total - st.Fill; valid > 0 {
		st.CloudCover = 100 * float64(counts[classqa.Cloud]) / float64(valid)
		st.CloudShadowCover = 100 * float64(counts[classqa.Cloud]+counts[classqa.CloudShadow]) / float64(valid)
	}
	return st
}

// BitCount is the population of one pixel QA flag bit.
type BitCount struct {
	Bit   int
	Name  string
	Count int
}

// PixelStats summarizes a pixel QA band.
type PixelStats struct {
	Total int
	Fill  int

	// Bits holds one entry per single-bit flag. The two-bit confidence
	// fields are reported per level instead, over non-fill pixels only.
	Bits             []BitCount
	CloudConfidence  [4]int
	CirrusConfidence [4]int // stays zero for legacy scenes

	// CloudCover is the percent of non-fill pixels with the cloud bit set.
	CloudCover float64
}

// CountPixelFlags tallies a pixel QA band. The family decides whether the
// cirrus confidence and terrain occlusion fields are populated.
func CountPixelFlags(data []uint16, family l1qa.Family) *PixelStats {
	names := pixelqa.BitDescriptions(family)
	flagBits := []int{
		pixelqa.BitFill,
		pixelqa.BitClear,
		pixelqa.BitWater,
		pixelqa.BitCloudShadow,
		pixelqa.BitSnow,
		pixelqa.BitCloud,
	}
	if family == l1qa.FamilyModern {
		flagBits = append(flagBits, pixelqa.BitTerrainOcclusion)
	}

	var bitCounts [pixelqa.NumBits]int
	st := &PixelStats{Total: len(data)}
	for _, v := range data {
		if pixelqa.IsFill(v) {
			st.Fill++
			bitCounts[pixelqa.BitFill]++
			continue
		}
		for _, bit := range flagBits {
			if v&(1<<bit) != 0 {
				bitCounts[bit]++
			}
		}
		st.CloudConfidence[pixelqa.CloudConfidence(v)]++
		if family == l1qa.FamilyModern {
			st.CirrusConfidence[pixelqa.CirrusConfidence(v)]++
		}
	}

	for _, bit := range flagBits {
		st.Bits = append(st.Bits, BitCount{Bit: bit, Name: names[bit], Count: bitCounts[bit]})
	}

	if valid := st.Total - st.Fill; valid > 0 {
		st.CloudCover = 100 * float64(bitCounts[pixelqa.BitCloud]) / float64(valid)
	}
	return st
}
