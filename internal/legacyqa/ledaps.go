// Package legacyqa decodes the QA masks written by the two legacy
// surface-reflectance processors: the LEDAPS cloud mask (sr_cloud_qa) and
// the LaSRC aerosol mask (sr_aerosol). Both are 8-bit bit-packed bands.
// Nothing in this toolkit generates them; they are decode-only.
package legacyqa

// LEDAPS cloud mask bit positions.
const (
	ledapsDDVBit         = 0 // dark dense vegetation
	ledapsCloudBit       = 1
	ledapsCloudShadowBit = 2
	ledapsAdjCloudBit    = 3
	ledapsSnowBit        = 4
	ledapsLandWaterBit   = 5 // set = land, clear = water
)

// LedapsDDV reports whether the pixel is dark dense vegetation.
func LedapsDDV(v uint8) bool { return v&(1<<ledapsDDVBit) != 0 }

// LedapsCloud reports whether the pixel is cloud.
func LedapsCloud(v uint8) bool { return v&(1<<ledapsCloudBit) != 0 }

// LedapsCloudShadow reports whether the pixel is cloud shadow.
func LedapsCloudShadow(v uint8) bool { return v&(1<<ledapsCloudShadowBit) != 0 }

// LedapsAdjacentCloud reports whether the pixel is adjacent to a cloud.
func LedapsAdjacentCloud(v uint8) bool { return v&(1<<ledapsAdjCloudBit) != 0 }

// LedapsSnow reports whether the pixel is snow.
func LedapsSnow(v uint8) bool { return v&(1<<ledapsSnowBit) != 0 }

// LedapsLand reports whether the pixel is land; false means water.
func LedapsLand(v uint8) bool { return v&(1<<ledapsLandWaterBit) != 0 }
