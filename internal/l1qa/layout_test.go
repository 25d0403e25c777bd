package l1qa

import "testing"

func TestDecodeCloudOnly(t *testing.T) {
	// raw value with only the cloud flag set decodes to cloud=true and
	// every confidence field at 0
	const v = uint16(1 << 4)
	for _, l := range []Layout{Legacy, Modern} {
		if !l.IsCloud(v) {
			t.Errorf("%s: IsCloud(%#04x) = false, want true", l.Family(), v)
		}
		if l.IsFill(v) {
			t.Errorf("%s: IsFill(%#04x) = true, want false", l.Family(), v)
		}
		if c := l.CloudConfidence(v); c != ConfNone {
			t.Errorf("%s: CloudConfidence = %d, want 0", l.Family(), c)
		}
		if c := l.CloudShadowConfidence(v); c != ConfNone {
			t.Errorf("%s: CloudShadowConfidence = %d, want 0", l.Family(), c)
		}
		if c := l.SnowIceConfidence(v); c != ConfNone {
			t.Errorf("%s: SnowIceConfidence = %d, want 0", l.Family(), c)
		}
		if c := l.CirrusConfidence(v); c != ConfNone {
			t.Errorf("%s: CirrusConfidence = %d, want 0", l.Family(), c)
		}
	}
}

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		name string
		v    uint16
		get  func(Layout, uint16) Confidence
		want Confidence
	}{
		{"saturation low", 1 << 2, Layout.SaturationLevel, ConfLow},
		{"saturation high", 3 << 2, Layout.SaturationLevel, ConfHigh},
		{"cloud conf low", 1 << 5, Layout.CloudConfidence, ConfLow},
		{"cloud conf moderate", 2 << 5, Layout.CloudConfidence, ConfModerate},
		{"cloud conf high", 3 << 5, Layout.CloudConfidence, ConfHigh},
		{"shadow conf moderate", 2 << 7, Layout.CloudShadowConfidence, ConfModerate},
		{"shadow conf high", 3 << 7, Layout.CloudShadowConfidence, ConfHigh},
		{"snow conf high", 3 << 9, Layout.SnowIceConfidence, ConfHigh},
	}
	for _, tt := range tests {
		for _, l := range []Layout{Legacy, Modern} {
			if got := tt.get(l, tt.v); got != tt.want {
				t.Errorf("%s (%s layout): got %d, want %d", tt.name, l.Family(), got, tt.want)
			}
		}
	}
}

func TestDecodeIsTotal(t *testing.T) {
	// every field reads through a 2-bit mask, so all-ones decodes cleanly
	const v = uint16(0xffff)
	l := Modern
	if !l.IsFill(v) || !l.IsCloud(v) || !l.IsTerrainOccluded(v) {
		t.Error("flag fields did not decode from all-ones")
	}
	for name, c := range map[string]Confidence{
		"saturation": l.SaturationLevel(v),
		"cloud":      l.CloudConfidence(v),
		"shadow":     l.CloudShadowConfidence(v),
		"snow":       l.SnowIceConfidence(v),
		"cirrus":     l.CirrusConfidence(v),
	} {
		if c != ConfHigh {
			t.Errorf("%s confidence = %d, want 3", name, c)
		}
	}
}

func TestBit1FamilyGating(t *testing.T) {
	const v = uint16(1 << 1)

	if !Legacy.IsDroppedPixel(v) {
		t.Error("legacy layout: bit 1 should read as dropped pixel")
	}
	if Legacy.IsTerrainOccluded(v) {
		t.Error("legacy layout has no terrain occlusion field")
	}
	if Modern.IsDroppedPixel(v) {
		t.Error("modern layout has no dropped pixel field")
	}
	if !Modern.IsTerrainOccluded(v) {
		t.Error("modern layout: bit 1 should read as terrain occlusion")
	}
}

func TestCirrusFamilyGating(t *testing.T) {
	const v = uint16(3 << 11)

	if got := Legacy.CirrusConfidence(v); got != ConfNone {
		t.Errorf("legacy cirrus = %d, want 0 (field absent)", got)
	}
	if got := Modern.CirrusConfidence(v); got != ConfHigh {
		t.Errorf("modern cirrus = %d, want 3", got)
	}
	if Legacy.HasCirrus() || !Modern.HasCirrus() {
		t.Error("HasCirrus family gating is wrong")
	}
}

func TestForFamily(t *testing.T) {
	if ForFamily(FamilyLegacy) != Legacy {
		t.Error("ForFamily(FamilyLegacy) != Legacy")
	}
	if ForFamily(FamilyModern) != Modern {
		t.Error("ForFamily(FamilyModern) != Modern")
	}
}

func TestBandSaturated(t *testing.T) {
	tests := []struct {
		v    uint16
		band int
		want bool
	}{
		{1 << 0, 1, true},
		{1 << 0, 2, false},
		{1 << 6, 7, true},
		{1 << 10, 11, true},
		{1 << 5, 61, true}, // band 61 reads band 6's bit
		{1 << 8, 62, true}, // band 62 reads band 9's bit
		{1 << 5, 6, true},
		{0xffff, 12, false}, // out of range
		{0xffff, 0, false},
		{0xffff, -3, false},
	}
	for _, tt := range tests {
		if got := BandSaturated(tt.v, tt.band); got != tt.want {
			t.Errorf("BandSaturated(%#04x, %d) = %v, want %v", tt.v, tt.band, got, tt.want)
		}
	}
}
