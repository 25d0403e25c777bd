package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	m.Run()
}

func decodeQuicklook(t *testing.T, fsys fsutil.FileSystem, path string) (width, height int) {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("quicklook not written: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("quicklook is not a PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestClassQuicklook(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	band := []uint8{
		classqa.Clear, classqa.Cloud, classqa.Water,
		classqa.Fill, classqa.Snow, classqa.CloudShadow,
	}

	err := ClassQuicklook(fsys, "/out/scene_class.png", "class_based_qa", band, 2, 3)
	if err != nil {
		t.Fatalf("ClassQuicklook failed: %v", err)
	}

	w, h := decodeQuicklook(t, fsys, "/out/scene_class.png")
	if w <= 0 || h <= 0 {
		t.Fatalf("decoded quicklook is %dx%d", w, h)
	}
	if w <= h {
		t.Errorf("wide raster should render wider than tall, got %dx%d", w, h)
	}
}

func TestClassQuicklookUnknownValue(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	// 77 is not a defined class, must render (as fill) rather than fail
	err := ClassQuicklook(fsys, "/out/odd.png", "class_based_qa", []uint8{77, classqa.Clear}, 1, 2)
	if err != nil {
		t.Fatalf("ClassQuicklook failed on unknown class: %v", err)
	}
}

func TestClassQuicklookDimensionMismatch(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	err := ClassQuicklook(fsys, "/out/bad.png", "class_based_qa", []uint8{0, 0, 0}, 2, 3)
	if err == nil {
		t.Fatal("expected error for short band")
	}
	if !strings.Contains(err.Error(), "dimensions") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBitQuicklook(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	band := []uint16{
		0x0020, 0x0002,
		0x0002, 0x0020,
		0x0001, 0x0002,
	}

	err := BitQuicklook(fsys, "/out/scene_cloud.png", "pixel_qa bit 5", band, 5, 3, 2)
	if err != nil {
		t.Fatalf("BitQuicklook failed: %v", err)
	}

	w, h := decodeQuicklook(t, fsys, "/out/scene_cloud.png")
	if h <= w {
		t.Errorf("tall raster should render taller than wide, got %dx%d", w, h)
	}
}

func TestBitQuicklookBitRange(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	for _, bit := range []int{-1, 16, 99} {
		err := BitQuicklook(fsys, "/out/bad.png", "pixel_qa", []uint16{0}, bit, 1, 1)
		if err == nil {
			t.Errorf("bit %d: expected range error", bit)
		}
	}
}
