package classqa

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/l1qa"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func TestFromLevel1(t *testing.T) {
	tests := []struct {
		name   string
		layout l1qa.Layout
		in     uint16
		want   uint8
	}{
		{"all zero is clear", l1qa.Modern, 0, Clear},
		{"fill", l1qa.Modern, 1, Fill},
		{"fill beats cloud", l1qa.Modern, 1 | 1<<4, Fill},
		{"cloud flag", l1qa.Modern, 1 << 4, Cloud},
		{"cloud beats snow", l1qa.Modern, 1<<4 | 3<<9, Cloud},
		{"snow high", l1qa.Modern, 3 << 9, Snow},
		{"snow beats shadow", l1qa.Modern, 3<<9 | 3<<7, Snow},
		{"shadow high", l1qa.Modern, 3 << 7, CloudShadow},
		{"shadow moderate is clear", l1qa.Modern, 2 << 7, Clear},
		{"cloud conf alone is clear", l1qa.Modern, 3 << 5, Clear},
		{"cirrus bits do not classify", l1qa.Modern, 3 << 11, Clear},
		{"legacy shadow high", l1qa.Legacy, 3 << 7, CloudShadow},
		{"legacy dropped pixel is clear", l1qa.Legacy, 1 << 1, Clear},
	}
	for _, tt := range tests {
		if got := FromLevel1(tt.in, tt.layout); got != tt.want {
			t.Errorf("%s: FromLevel1(%#04x) = %d (%s), want %d (%s)",
				tt.name, tt.in, got, Name(got), tt.want, Name(tt.want))
		}
	}
}

func TestName(t *testing.T) {
	want := map[uint8]string{
		Clear: "clear", Water: "water", CloudShadow: "cloud_shadow",
		Snow: "snow", Cloud: "cloud", Fill: "fill",
	}
	for v, name := range want {
		if got := Name(v); got != name {
			t.Errorf("Name(%d) = %q, want %q", v, got, name)
		}
	}
	if got := Name(42); got != "unknown" {
		t.Errorf("Name(42) = %q, want unknown", got)
	}
}

const sceneTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<espa_metadata version="2.2" xmlns="http://espa.cr.usgs.gov/v2">
    <global_metadata>
        <satellite>LANDSAT_5</satellite>
        <instrument>%s</instrument>
    </global_metadata>
    <bands>
        <band product="L1TP" name="band1" category="image" data_type="INT16" nlines="2" nsamps="3" fill_value="-9999">
            <short_name>LT05DN</short_name>
            <file_name>scene_band1.img</file_name>
            <pixel_size x="30" y="30" units="meters"/>
        </band>
        <band product="L1TP" name="bqa_pixel" category="qa" data_type="UINT16" nlines="2" nsamps="3" fill_value="1">
            <file_name>scene_bqa_pixel.img</file_name>
        </band>
    </bands>
</espa_metadata>
`

func writeScene(t *testing.T, fsys *fsutil.MemoryFileSystem, instrument string, l1 []uint16) *espa.Metadata {
	t.Helper()
	if err := fsys.WriteFile("/scene/scene.xml", []byte(fmt.Sprintf(sceneTemplate, instrument)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := espa.WriteUint16Band(fsys, "/scene/scene_bqa_pixel.img", l1, 2, 3); err != nil {
		t.Fatal(err)
	}
	m, err := espa.ParseMetadata(fsys, "/scene/scene.xml")
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return m
}

func TestGenerate(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	l1 := []uint16{1, 0, 1 << 4, 3 << 7, 3 << 9, 1<<4 | 3<<9}
	m := writeScene(t, fsys, "TM", l1)

	res, err := Generate(fsys, m)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Path != "/scene/scene_class_based_qa.img" {
		t.Errorf("band file = %q", res.Path)
	}
	if res.Family != l1qa.FamilyLegacy {
		t.Errorf("family = %s, want legacy for TM", res.Family)
	}

	want := []uint8{Fill, Clear, Cloud, CloudShadow, Snow, Cloud}
	got, err := espa.ReadUint8Band(fsys, res.Path, 2, 3)
	if err != nil {
		t.Fatalf("reading generated band: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %d (%s), want %d (%s)", i, got[i], Name(got[i]), want[i], Name(want[i]))
		}
	}

	hdr, err := fsys.ReadFile("/scene/scene_class_based_qa.hdr")
	if err != nil {
		t.Fatalf("ENVI header not written: %v", err)
	}
	if !strings.Contains(string(hdr), "data type = 1\n") {
		t.Errorf("header lacks UINT8 type code:\n%s", hdr)
	}

	m2, err := espa.ParseMetadata(fsys, "/scene/scene.xml")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m2.QABandByName(BandName)
	if err != nil {
		t.Fatalf("generated band not in metadata: %v", err)
	}
	if b.Product != "level2_qa" || b.DataType != espa.TypeUINT8 {
		t.Errorf("band attrs = %q/%q", b.Product, b.DataType)
	}
	if b.FillValue == nil || *b.FillValue != 255 {
		t.Errorf("fill value = %v, want 255", b.FillValue)
	}
	if b.ShortName != "LT0L2QA" {
		t.Errorf("short name = %q, want LT0L2QA", b.ShortName)
	}
	if b.LongName != "level-2 quality band" {
		t.Errorf("long name = %q", b.LongName)
	}
	if b.ValidRange == nil || b.ValidRange.Min != 0 || b.ValidRange.Max != 255 {
		t.Errorf("valid range = %+v", b.ValidRange)
	}
	if b.Classes == nil || len(b.Classes.Classes) != 6 {
		t.Fatalf("class values = %+v", b.Classes)
	}
	wantClasses := []espa.ClassDesc{
		{Num: 0, Text: "clear"}, {Num: 1, Text: "water"}, {Num: 2, Text: "cloud_shadow"},
		{Num: 3, Text: "snow"}, {Num: 4, Text: "cloud"}, {Num: 255, Text: "fill"},
	}
	for i, wc := range wantClasses {
		if b.Classes.Classes[i] != wc {
			t.Errorf("class %d = %+v, want %+v", i, b.Classes.Classes[i], wc)
		}
	}

	read, err := ReadBand(fsys, m2)
	if err != nil {
		t.Fatalf("ReadBand after Generate: %v", err)
	}
	for i := range want {
		if read.Data[i] != want[i] {
			t.Errorf("ReadBand pixel %d = %d, want %d", i, read.Data[i], want[i])
		}
	}
}

func TestReadBandMissing(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	m := writeScene(t, fsys, "TM", make([]uint16, 6))
	if _, err := ReadBand(fsys, m); err == nil {
		t.Error("ReadBand succeeded before the class band was generated")
	}
}
