package espa

import (
	"strings"
	"testing"

	"github.com/eros-data/landsat.qa/internal/fsutil"
)

func TestWriteEnviHeader(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	b := Band{
		Name:     "pixel_qa",
		DataType: TypeUINT16,
		NLines:   7201,
		NSamps:   7341,
		FileName: "/scene/LC08_pixel_qa.img",
	}
	if err := WriteEnviHeader(fsys, b.FileName, &b); err != nil {
		t.Fatalf("WriteEnviHeader failed: %v", err)
	}

	raw, err := fsys.ReadFile("/scene/LC08_pixel_qa.hdr")
	if err != nil {
		t.Fatalf("header not written next to band file: %v", err)
	}
	want := "ENVI\n" +
		"description = {Band file: /scene/LC08_pixel_qa.img}\n" +
		"samples = 7341\n" +
		"lines = 7201\n" +
		"bands = 1\n" +
		"header offset = 0\n" +
		"file type = ENVI Standard\n" +
		"data type = 12\n" +
		"interleave = bsq\n" +
		"byte order = 0\n"
	if string(raw) != want {
		t.Errorf("header mismatch:\ngot:\n%s\nwant:\n%s", raw, want)
	}
}

func TestWriteEnviHeaderUint8(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	b := Band{
		Name:     "class_based_qa",
		DataType: TypeUINT8,
		NLines:   10,
		NSamps:   20,
		FileName: "scene_class_based_qa.img",
	}
	if err := WriteEnviHeader(fsys, b.FileName, &b); err != nil {
		t.Fatalf("WriteEnviHeader failed: %v", err)
	}
	raw, err := fsys.ReadFile("scene_class_based_qa.hdr")
	if err != nil {
		t.Fatalf("header not written: %v", err)
	}
	if got := string(raw); !strings.Contains(got, "data type = 1\n") {
		t.Errorf("UINT8 header lacks data type 1:\n%s", got)
	}
}

func TestWriteEnviHeaderUnsupportedType(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	b := Band{Name: "odd", DataType: TypeINT8, FileName: "odd.img"}
	if err := WriteEnviHeader(fsys, b.FileName, &b); err == nil {
		t.Error("WriteEnviHeader accepted INT8, which has no ENVI code")
	}
}

func TestEnviHeaderPath(t *testing.T) {
	tests := []struct{ img, hdr string }{
		{"/a/b/band.img", "/a/b/band.hdr"},
		{"band.img", "band.hdr"},
		{"band.raw.img", "band.raw.hdr"},
	}
	for _, tt := range tests {
		if got := EnviHeaderPath(tt.img); got != tt.hdr {
			t.Errorf("EnviHeaderPath(%s) = %s, want %s", tt.img, got, tt.hdr)
		}
	}
}
