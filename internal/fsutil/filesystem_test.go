package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	osfs := OSFileSystem{}

	if !osfs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}
	if osfs.Exists("no_such_band.img") {
		t.Error("expected missing file to not exist")
	}
}

func TestOSFileSystem_RoundTrip(t *testing.T) {
	osfs := OSFileSystem{}
	path := filepath.Join(t.TempDir(), "band.img")

	if err := osfs.WriteFile(path, []byte{0x01, 0x00, 0xff, 0xff}, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := osfs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) != 4 {
		t.Errorf("read %d bytes, want 4", len(data))
	}

	info, err := osfs.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("Stat size = %d, want 4", info.Size())
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	want := []byte("samples = 7611")
	if err := mfs.WriteFile("/scene/band.hdr", want, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := mfs.ReadFile("/scene/band.hdr")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("ReadFile = %q, want %q", got, want)
	}
}

func TestMemoryFileSystem_CreateCommitsOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/scene/band.img")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte{1, 2}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write([]byte{3, 4}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, err := mfs.ReadFile("/scene/band.img")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != 4 || got[3] != 4 {
		t.Errorf("committed content = %v, want [1 2 3 4]", got)
	}
}

func TestMemoryFileSystem_CreateTruncates(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/band.img", []byte("old contents"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	w, err := mfs.Create("/band.img")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("new")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, _ := mfs.ReadFile("/band.img")
	if string(got) != "new" {
		t.Errorf("content after rewrite = %q, want %q", got, "new")
	}
}

func TestMemoryFileSystem_OpenStreams(t *testing.T) {
	mfs := NewMemoryFileSystem()
	if err := mfs.WriteFile("/band.img", []byte{10, 20, 30}, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := mfs.Open("/band.img")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	buf := make([]byte, 2)
	if _, err := io.ReadFull(f, buf); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if buf[0] != 10 || buf[1] != 20 {
		t.Errorf("first read = %v, want [10 20]", buf)
	}

	n, err := f.Read(buf)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if n != 1 || buf[0] != 30 {
		t.Errorf("second read = %v (n=%d), want [30] (n=1)", buf[:n], n)
	}

	if _, err := f.Read(buf); err != io.EOF {
		t.Errorf("read past end = %v, want io.EOF", err)
	}
}

func TestMemoryFileSystem_NotExist(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.Open("/missing.img"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open missing = %v, want fs.ErrNotExist", err)
	}
	if _, err := mfs.ReadFile("/missing.img"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing = %v, want fs.ErrNotExist", err)
	}
	if _, err := mfs.Stat("/missing.img"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat missing = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.MkdirAll("/out/plots/scene1", os.FileMode(0755)); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, dir := range []string{"/out", "/out/plots", "/out/plots/scene1"} {
		if !mfs.Exists(dir) {
			t.Errorf("expected %s to exist after MkdirAll", dir)
		}
		info, err := mfs.Stat(dir)
		if err != nil {
			t.Fatalf("Stat(%s) failed: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%s).IsDir() = false, want true", dir)
		}
	}
}
