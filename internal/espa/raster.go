package espa

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/eros-data/landsat.qa/internal/fsutil"
)

// Band files are flat binary, band-sequential, little-endian (ENVI byte
// order 0), no header. Reads and writes stream one row at a time so the
// only whole-band allocation is the raster itself.

// ReadUint8Band reads an 8-bit band file of nlines x nsamps pixels.
func ReadUint8Band(fsys fsutil.FileSystem, path string, nlines, nsamps int) ([]uint8, error) {
	if err := checkDims(nlines, nsamps); err != nil {
		return nil, fmt.Errorf("read %s: %v", path, err)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open band %s: %v", path, err)
	}
	defer f.Close()

	data := make([]uint8, nlines*nsamps)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("read band %s: expected %d pixels: %v", path, len(data), err)
	}
	if err := expectEOF(f); err != nil {
		return nil, fmt.Errorf("read band %s: %v", path, err)
	}
	return data, nil
}

// ReadUint16Band reads a 16-bit band file of nlines x nsamps pixels.
func ReadUint16Band(fsys fsutil.FileSystem, path string, nlines, nsamps int) ([]uint16, error) {
	if err := checkDims(nlines, nsamps); err != nil {
		return nil, fmt.Errorf("read %s: %v", path, err)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open band %s: %v", path, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 1<<16)
	data := make([]uint16, nlines*nsamps)
	row := make([]byte, 2*nsamps)
	for line := 0; line < nlines; line++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("read band %s line %d: %v", path, line, err)
		}
		base := line * nsamps
		for s := 0; s < nsamps; s++ {
			data[base+s] = binary.LittleEndian.Uint16(row[2*s:])
		}
	}
	if err := expectEOF(br); err != nil {
		return nil, fmt.Errorf("read band %s: %v", path, err)
	}
	return data, nil
}

// WriteUint8Band writes an 8-bit band file, replacing any existing file.
func WriteUint8Band(fsys fsutil.FileSystem, path string, data []uint8, nlines, nsamps int) error {
	if err := checkBuffer(len(data), nlines, nsamps); err != nil {
		return fmt.Errorf("write %s: %v", path, err)
	}
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create band %s: %v", path, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write band %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close band %s: %v", path, err)
	}
	return nil
}

// WriteUint16Band writes a 16-bit band file, replacing any existing file.
func WriteUint16Band(fsys fsutil.FileSystem, path string, data []uint16, nlines, nsamps int) error {
	if err := checkBuffer(len(data), nlines, nsamps); err != nil {
		return fmt.Errorf("write %s: %v", path, err)
	}
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create band %s: %v", path, err)
	}
	bw := bufio.NewWriterSize(w, 1<<16)
	row := make([]byte, 2*nsamps)
	for line := 0; line < nlines; line++ {
		base := line * nsamps
		for s := 0; s < nsamps; s++ {
			binary.LittleEndian.PutUint16(row[2*s:], data[base+s])
		}
		if _, err := bw.Write(row); err != nil {
			w.Close()
			return fmt.Errorf("write band %s line %d: %v", path, line, err)
		}
	}
	if err := bw.Flush(); err != nil {
		w.Close()
		return fmt.Errorf("flush band %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close band %s: %v", path, err)
	}
	return nil
}

func checkDims(nlines, nsamps int) error {
	if nlines <= 0 || nsamps <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", nlines, nsamps)
	}
	return nil
}

func checkBuffer(n, nlines, nsamps int) error {
	if err := checkDims(nlines, nsamps); err != nil {
		return err
	}
	if n != nlines*nsamps {
		return fmt.Errorf("buffer holds %d pixels, dimensions %dx%d need %d",
			n, nlines, nsamps, nlines*nsamps)
	}
	return nil
}

// expectEOF verifies the band file carries no bytes beyond the declared
// dimensions. A longer file means the XML and the band disagree.
func expectEOF(r io.Reader) error {
	var one [1]byte
	for {
		n, err := r.Read(one[:])
		if n > 0 {
			return fmt.Errorf("file longer than declared dimensions")
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
