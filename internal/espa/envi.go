package espa

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eros-data/landsat.qa/internal/fsutil"
)

// ENVI data type codes for the subset of ESPA types band files use.
var enviTypeCodes = map[string]int{
	TypeUINT8:   1,
	TypeINT16:   2,
	TypeINT32:   3,
	TypeFLOAT32: 4,
	TypeFLOAT64: 5,
	TypeUINT16:  12,
	TypeUINT32:  13,
}

// EnviHeaderPath returns the .hdr sidecar path for a band file.
func EnviHeaderPath(imgPath string) string {
	ext := filepath.Ext(imgPath)
	return strings.TrimSuffix(imgPath, ext) + ".hdr"
}

// WriteEnviHeader writes the ENVI header sidecar describing the band file
// at imgPath, next to that file. imgPath is the write location; the band's
// file_name may be a bare name relative to its metadata document.
func WriteEnviHeader(fsys fsutil.FileSystem, imgPath string, b *Band) error {
	code, ok := enviTypeCodes[b.DataType]
	if !ok {
		return fmt.Errorf("envi header for %s: no ENVI type for %s", b.FileName, b.DataType)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "ENVI\n")
	fmt.Fprintf(&sb, "description = {Band file: %s}\n", b.FileName)
	fmt.Fprintf(&sb, "samples = %d\n", b.NSamps)
	fmt.Fprintf(&sb, "lines = %d\n", b.NLines)
	fmt.Fprintf(&sb, "bands = 1\n")
	fmt.Fprintf(&sb, "header offset = 0\n")
	fmt.Fprintf(&sb, "file type = ENVI Standard\n")
	fmt.Fprintf(&sb, "data type = %d\n", code)
	fmt.Fprintf(&sb, "interleave = bsq\n")
	fmt.Fprintf(&sb, "byte order = 0\n")

	path := EnviHeaderPath(imgPath)
	if err := fsys.WriteFile(path, []byte(sb.String()), os.FileMode(0644)); err != nil {
		return fmt.Errorf("write envi header %s: %v", path, err)
	}
	return nil
}
