package qastats

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eros-data/landsat.qa/internal/fsutil"
)

func TestCountLedapsFlags(t *testing.T) {
	// bit0 ddv, bit1 cloud, bit2 shadow, bit3 adjacent, bit4 snow, bit5 land
	mask := []uint8{
		0,           // open water, nothing set
		1<<1 | 1<<5, // cloud over land
		1<<2 | 1<<5, // shadow over land
		1<<1 | 1<<3, // cloud with adjacency
		1<<0 | 1<<5, // ddv
		1 << 4,      // snow
	}

	st := CountLedapsFlags(mask)

	if st.Total != 6 || st.Fill != 0 {
		t.Fatalf("Total = %d, Fill = %d, want 6 and 0", st.Total, st.Fill)
	}
	want := []BitCount{
		{Bit: 0, Name: "dark dense veg", Count: 1},
		{Bit: 1, Name: "cloud", Count: 2},
		{Bit: 2, Name: "cloud shadow", Count: 1},
		{Bit: 3, Name: "adjacent cloud", Count: 1},
		{Bit: 4, Name: "snow", Count: 1},
		{Bit: 5, Name: "land", Count: 3},
	}
	if diff := cmp.Diff(want, st.Flags); diff != "" {
		t.Errorf("flag counts mismatch (-want +got):\n%s", diff)
	}
	if st.AerosolLevels != [4]int{} {
		t.Errorf("AerosolLevels = %v for a LEDAPS mask, want all zero", st.AerosolLevels)
	}
}

func TestCountLasrcFlags(t *testing.T) {
	mask := []uint8{
		1 << 0,      // fill
		1 << 0,      // fill
		1<<1 | 1<<6, // valid aerosol, level low
		1<<2 | 2<<6, // water, level moderate
		1<<3 | 3<<6, // cloud/cirrus, level high
		1<<4 | 1<<5, // shadow, interpolated, level climatology
	}

	st := CountLasrcFlags(mask)

	if st.Total != 6 || st.Fill != 2 {
		t.Fatalf("Total = %d, Fill = %d, want 6 and 2", st.Total, st.Fill)
	}
	want := []BitCount{
		{Bit: 1, Name: "valid aerosol", Count: 1},
		{Bit: 2, Name: "water", Count: 1},
		{Bit: 3, Name: "cloud or cirrus", Count: 1},
		{Bit: 4, Name: "cloud shadow", Count: 1},
		{Bit: 5, Name: "interpolated", Count: 1},
	}
	if diff := cmp.Diff(want, st.Flags); diff != "" {
		t.Errorf("flag counts mismatch (-want +got):\n%s", diff)
	}
	if got, want := st.AerosolLevels, [4]int{1, 1, 1, 1}; got != want {
		t.Errorf("AerosolLevels = %v, want %v", got, want)
	}
}

func TestCountLasrcFlagsFillExcluded(t *testing.T) {
	// fill bit plus cloud bit: fill wins, nothing else tallied
	st := CountLasrcFlags([]uint8{1<<0 | 1<<3 | 3<<6})
	if st.Fill != 1 {
		t.Fatalf("Fill = %d, want 1", st.Fill)
	}
	for _, f := range st.Flags {
		if f.Count != 0 {
			t.Errorf("%s counted %d on a fill pixel", f.Name, f.Count)
		}
	}
	if st.AerosolLevels != [4]int{} {
		t.Errorf("AerosolLevels = %v, want all zero", st.AerosolLevels)
	}
}

func TestWriteMaskReport(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	st := CountLedapsFlags([]uint8{1 << 1, 1 << 5, 0})

	if err := WriteMaskReport(fsys, "/out/mask.html", "LE07_scene", "sr_cloud_qa", st); err != nil {
		t.Fatalf("WriteMaskReport failed: %v", err)
	}
	raw, err := fsys.ReadFile("/out/mask.html")
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	html := string(raw)
	for _, want := range []string{"sr_cloud_qa Populations", "adjacent cloud", "LE07_scene", "echarts"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
