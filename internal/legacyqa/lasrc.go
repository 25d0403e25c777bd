package legacyqa

// LaSRC aerosol mask bit positions.
const (
	lasrcFillBit         = 0
	lasrcValidAerosolBit = 1
	lasrcWaterBit        = 2
	lasrcCloudCirrusBit  = 3
	lasrcCloudShadowBit  = 4
	lasrcInterpBit       = 5 // aerosol interpolated from a non-center window
	lasrcLevelShift      = 6 // bits 6-7
)

// AerosolLevel is the 2-bit aerosol retrieval level.
type AerosolLevel uint8

const (
	AerosolClimatology AerosolLevel = 0
	AerosolLow         AerosolLevel = 1
	AerosolModerate    AerosolLevel = 2
	AerosolHigh        AerosolLevel = 3
)

func (a AerosolLevel) String() string {
	switch a {
	case AerosolLow:
		return "low"
	case AerosolModerate:
		return "moderate"
	case AerosolHigh:
		return "high"
	}
	return "climatology"
}

// LasrcFill reports whether the pixel is fill.
func LasrcFill(v uint8) bool { return v&(1<<lasrcFillBit) != 0 }

// LasrcValidAerosol reports whether the aerosol retrieval is valid.
func LasrcValidAerosol(v uint8) bool { return v&(1<<lasrcValidAerosolBit) != 0 }

// LasrcWater reports whether the pixel is water.
func LasrcWater(v uint8) bool { return v&(1<<lasrcWaterBit) != 0 }

// LasrcCloudOrCirrus reports whether the pixel is cloud or cirrus.
func LasrcCloudOrCirrus(v uint8) bool { return v&(1<<lasrcCloudCirrusBit) != 0 }

// LasrcCloudShadow reports whether the pixel is cloud shadow.
func LasrcCloudShadow(v uint8) bool { return v&(1<<lasrcCloudShadowBit) != 0 }

// LasrcAerosolInterp reports whether the aerosol value was interpolated
// rather than retrieved at the pixel.
func LasrcAerosolInterp(v uint8) bool { return v&(1<<lasrcInterpBit) != 0 }

// LasrcAerosolLevel returns the 2-bit aerosol level field.
func LasrcAerosolLevel(v uint8) AerosolLevel {
	return AerosolLevel(v >> lasrcLevelShift & 0x3)
}
