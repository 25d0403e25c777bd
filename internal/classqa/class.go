// Package classqa generates, reads, and describes the Level-2 class QA
// band, a scalar UINT8 raster holding one mutually exclusive class per
// pixel. It is the simpler sibling of the bit-packed pixel QA band.
package classqa

import "github.com/eros-data/landsat.qa/internal/l1qa"

// BandName is the name the class QA band carries in scene metadata.
const BandName = "class_based_qa"

// Class values. Water is defined but never produced from Level-1 input,
// which carries no water flag.
const (
	Clear       uint8 = 0
	Water       uint8 = 1
	CloudShadow uint8 = 2
	Snow        uint8 = 3
	Cloud       uint8 = 4
	Fill        uint8 = 255
)

// Values lists the defined class values in metadata order.
var Values = []uint8{Clear, Water, CloudShadow, Snow, Cloud, Fill}

// Name returns the description recorded for a class value in scene
// metadata.
func Name(v uint8) string {
	switch v {
	case Clear:
		return "clear"
	case Water:
		return "water"
	case CloudShadow:
		return "cloud_shadow"
	case Snow:
		return "snow"
	case Cloud:
		return "cloud"
	case Fill:
		return "fill"
	}
	return "unknown"
}

// FromLevel1 classifies one Level-1 QA value into a class. First matching
// rule wins: fill, then the cloud flag, then high snow/ice confidence, then
// high cloud shadow confidence; everything else is clear.
func FromLevel1(v uint16, layout l1qa.Layout) uint8 {
	switch {
	case layout.IsFill(v):
		return Fill
	case layout.IsCloud(v):
		return Cloud
	case layout.SnowIceConfidence(v) == l1qa.ConfHigh:
		return Snow
	case layout.CloudShadowConfidence(v) == l1qa.ConfHigh:
		return CloudShadow
	}
	return Clear
}
