// Package l1qa decodes Collection-1 Level-1 quality bands: the bit-packed
// pixel QA band (bqa_pixel) and the per-band radiometric saturation band
// (bqa_radsat). Decoding is pure bit arithmetic; every 16-bit value is a
// valid input.
package l1qa

// Confidence is a 2-bit QA confidence level.
type Confidence uint8

const (
	ConfNone     Confidence = 0 // field not evaluated
	ConfLow      Confidence = 1
	ConfModerate Confidence = 2
	ConfHigh     Confidence = 3
)

func (c Confidence) String() string {
	switch c {
	case ConfLow:
		return "low"
	case ConfModerate:
		return "moderate"
	case ConfHigh:
		return "high"
	}
	return "none"
}

// Family tags one of the two Collection-1 Level-1 bit layouts.
type Family int

const (
	// FamilyLegacy covers TM and ETM+ scenes (Landsat 4-7).
	FamilyLegacy Family = iota
	// FamilyModern covers OLI/TIRS scenes (Landsat 8-9).
	FamilyModern
)

func (f Family) String() string {
	if f == FamilyLegacy {
		return "legacy"
	}
	return "modern"
}

// bqa_pixel bit positions. Both families share every position; they differ
// only in the meaning of bit 1 and in whether the cirrus field exists.
const (
	fillBit         = 0  // no-data pixel
	occlusionBit    = 1  // dropped pixel (legacy) or terrain occlusion (modern)
	radSatShift     = 2  // bits 2-3: radiometric saturation level
	cloudBit        = 4  // cloud flag
	cloudConfShift  = 5  // bits 5-6: cloud confidence
	shadowConfShift = 7  // bits 7-8: cloud shadow confidence
	snowConfShift   = 9  // bits 9-10: snow/ice confidence
	cirrusConfShift = 11 // bits 11-12: cirrus confidence (modern only)
)

// Layout is the bit-layout configuration for one sensor family. All field
// accessors hang off a Layout value so the family decision is made exactly
// once, when the scene's instrument is resolved.
type Layout struct {
	family     Family
	hasDropped bool // bit 1 carries the dropped pixel flag
	hasTerrain bool // bit 1 carries the terrain occlusion flag
	hasCirrus  bool // bits 11-12 carry cirrus confidence
}

var (
	// Legacy is the TM/ETM+ layout.
	Legacy = Layout{family: FamilyLegacy, hasDropped: true}
	// Modern is the OLI/TIRS layout.
	Modern = Layout{family: FamilyModern, hasTerrain: true, hasCirrus: true}
)

// ForFamily returns the layout for a family tag.
func ForFamily(f Family) Layout {
	if f == FamilyLegacy {
		return Legacy
	}
	return Modern
}

// Family returns the layout's family tag.
func (l Layout) Family() Family { return l.family }

// HasCirrus reports whether the layout carries the cirrus confidence and
// terrain occlusion fields.
func (l Layout) HasCirrus() bool { return l.hasCirrus }

// IsFill reports whether the pixel is fill (no data).
func (l Layout) IsFill(v uint16) bool { return v&(1<<fillBit) != 0 }

// IsDroppedPixel reports whether a legacy-sensor pixel was lost in
// transmission. Always false for the modern layout.
func (l Layout) IsDroppedPixel(v uint16) bool {
	return l.hasDropped && v&(1<<occlusionBit) != 0
}

// IsTerrainOccluded reports whether a modern-sensor pixel is hidden by
// terrain. Always false for the legacy layout.
func (l Layout) IsTerrainOccluded(v uint16) bool {
	return l.hasTerrain && v&(1<<occlusionBit) != 0
}

// SaturationLevel returns the 2-bit radiometric saturation level: 0 none,
// 1 for 1-2 bands, 2 for 3-4 bands, 3 for 5 or more bands.
func (l Layout) SaturationLevel(v uint16) Confidence { return conf2(v, radSatShift) }

// IsCloud reports whether the cloud flag is set.
func (l Layout) IsCloud(v uint16) bool { return v&(1<<cloudBit) != 0 }

// CloudConfidence returns the 2-bit cloud confidence.
func (l Layout) CloudConfidence(v uint16) Confidence { return conf2(v, cloudConfShift) }

// CloudShadowConfidence returns the 2-bit cloud shadow confidence.
func (l Layout) CloudShadowConfidence(v uint16) Confidence { return conf2(v, shadowConfShift) }

// SnowIceConfidence returns the 2-bit snow/ice confidence.
func (l Layout) SnowIceConfidence(v uint16) Confidence { return conf2(v, snowConfShift) }

// CirrusConfidence returns the 2-bit cirrus confidence, or ConfNone for the
// legacy layout, which has no cirrus field.
func (l Layout) CirrusConfidence(v uint16) Confidence {
	if !l.hasCirrus {
		return ConfNone
	}
	return conf2(v, cirrusConfShift)
}

// conf2 reads a 2-bit field. The mask keeps every input in 0-3, so
// confidence decoding is total.
func conf2(v uint16, shift uint) Confidence {
	return Confidence((v >> shift) & 0x3)
}
