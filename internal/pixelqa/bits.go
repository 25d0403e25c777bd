// Package pixelqa generates, reads, and decodes the Level-2 pixel QA band,
// a bit-packed UINT16 raster classified from the Level-1 quality band.
// Unlike the scalar class band, its fields are independently settable: a
// pixel can be snow and cloud shadow at once.
package pixelqa

import "github.com/eros-data/landsat.qa/internal/l1qa"

// BandName is the name the pixel QA band carries in scene metadata.
const BandName = "pixel_qa"

// Bit positions in the pixel QA word. Water is defined but never set from
// Level-1 input; downstream applications may fill it in. Cirrus confidence
// and terrain occlusion carry meaning only for modern sensors.
const (
	BitFill        = 0
	BitClear       = 1
	BitWater       = 2
	BitCloudShadow = 3
	BitSnow        = 4
	BitCloud       = 5

	cloudConfShift  = 6 // bits 6-7
	cirrusConfShift = 8 // bits 8-9

	BitTerrainOcclusion = 10

	// NumBits is the width of the pixel QA word; bits 11-15 are reserved.
	NumBits = 16
)

// FillValue is a no-data pixel: only the fill bit set. It is also recorded
// as the band's fill value in scene metadata.
const FillValue = 1 << BitFill

func IsFill(v uint16) bool        { return v&(1<<BitFill) != 0 }
func IsClear(v uint16) bool       { return v&(1<<BitClear) != 0 }
func IsWater(v uint16) bool       { return v&(1<<BitWater) != 0 }
func IsCloudShadow(v uint16) bool { return v&(1<<BitCloudShadow) != 0 }
func IsSnow(v uint16) bool        { return v&(1<<BitSnow) != 0 }
func IsCloud(v uint16) bool       { return v&(1<<BitCloud) != 0 }

// IsTerrainOccluded reports bit 10; meaningful for modern sensors only.
func IsTerrainOccluded(v uint16) bool { return v&(1<<BitTerrainOcclusion) != 0 }

// CloudConfidence returns the 2-bit cloud confidence field.
func CloudConfidence(v uint16) l1qa.Confidence {
	return l1qa.Confidence(v >> cloudConfShift & 0x3)
}

// CirrusConfidence returns the 2-bit cirrus confidence field; meaningful
// for modern sensors only.
func CirrusConfidence(v uint16) l1qa.Confidence {
	return l1qa.Confidence(v >> cirrusConfShift & 0x3)
}

// BitDescriptions returns the per-bit description strings recorded in scene
// metadata, one per bit position. The gated slots read "unused" on legacy
// scenes.
func BitDescriptions(f l1qa.Family) []string {
	d := make([]string, NumBits)
	for i := range d {
		d[i] = "unused"
	}
	d[BitFill] = "fill"
	d[BitClear] = "clear"
	d[BitWater] = "water"
	d[BitCloudShadow] = "cloud shadow"
	d[BitSnow] = "snow"
	d[BitCloud] = "cloud"
	d[cloudConfShift] = "cloud confidence"
	d[cloudConfShift+1] = "cloud confidence"
	if f == l1qa.FamilyModern {
		d[cirrusConfShift] = "cirrus confidence"
		d[cirrusConfShift+1] = "cirrus confidence"
		d[BitTerrainOcclusion] = "terrain occlusion"
	}
	return d
}
