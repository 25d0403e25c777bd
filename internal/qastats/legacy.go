package qastats

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/legacyqa"
)

// maskFlag pairs a legacy mask accessor with its reporting name.
type maskFlag struct {
	bit  int
	name string
	set  func(uint8) bool
}

var ledapsFlags = []maskFlag{
	{0, "dark dense veg", legacyqa.LedapsDDV},
	{1, "cloud", legacyqa.LedapsCloud},
	{2, "cloud shadow", legacyqa.LedapsCloudShadow},
	{3, "adjacent cloud", legacyqa.LedapsAdjacentCloud},
	{4, "snow", legacyqa.LedapsSnow},
	{5, "land", legacyqa.LedapsLand},
}

var lasrcFlags = []maskFlag{
	{1, "valid aerosol", legacyqa.LasrcValidAerosol},
	{2, "water", legacyqa.LasrcWater},
	{3, "cloud or cirrus", legacyqa.LasrcCloudOrCirrus},
	{4, "cloud shadow", legacyqa.LasrcCloudShadow},
	{5, "interpolated", legacyqa.LasrcAerosolInterp},
}

// MaskStats summarizes one of the legacy surface-reflectance masks.
type MaskStats struct {
	Total int
	Fill  int // always 0 for LEDAPS, which carries no fill flag

	// Flags holds one entry per single-bit mask flag, in bit order.
	// LaSRC flags count non-fill pixels only.
	Flags []BitCount

	// AerosolLevels tallies the LaSRC aerosol level field over non-fill
	// pixels, climatology through high. Stays zero for LEDAPS.
	AerosolLevels [4]int
}

// CountLedapsFlags tallies the LEDAPS cloud mask. The mask has no fill
// flag, so every pixel participates.
func CountLedapsFlags(data []uint8) *MaskStats {
	st := &MaskStats{Total: len(data)}
	counts := make([]int, len(ledapsFlags))
	for _, v := range data {
		for i, f := range ledapsFlags {
			if f.set(v) {
				counts[i]++
			}
		}
	}
	st.Flags = flagCounts(ledapsFlags, counts)
	return st
}

// CountLasrcFlags tallies the LaSRC aerosol mask. Fill pixels are counted
// separately and excluded from the flag and level tallies.
func CountLasrcFlags(data []uint8) *MaskStats {
	st := &MaskStats{Total: len(data)}
	counts := make([]int, len(lasrcFlags))
	for _, v := range data {
		if legacyqa.LasrcFill(v) {
			st.Fill++
			continue
		}
		for i, f := range lasrcFlags {
			if f.set(v) {
				counts[i]++
			}
		}
		st.AerosolLevels[legacyqa.LasrcAerosolLevel(v)]++
	}
	st.Flags = flagCounts(lasrcFlags, counts)
	return st
}

func flagCounts(flags []maskFlag, counts []int) []BitCount {
	out := make([]BitCount, 0, len(flags))
	for i, f := range flags {
		out = append(out, BitCount{Bit: f.bit, Name: f.name, Count: counts[i]})
	}
	return out
}

// WriteMaskReport writes a standalone HTML bar chart of legacy mask flag
// populations.
func WriteMaskReport(fsys fsutil.FileSystem, path, scene, band string, st *MaskStats) error {
	x := make([]string, 0, len(st.Flags))
	y := make([]opts.BarData, 0, len(st.Flags))
	for _, f := range st.Flags {
		x = append(x, f.Name)
		y = append(y, opts.BarData{Value: f.Count})
	}

	subtitle := fmt.Sprintf("scene=%s pixels=%d fill=%d", scene, st.Total, st.Fill)
	return writeBarReport(fsys, path, band+" Populations", subtitle, x, y)
}
