package pixelqa

import (
	"fmt"

	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

// Band is a whole pixel QA raster read through scene metadata.
type Band struct {
	Data   []uint16
	NLines int
	NSamps int
	Path   string // resolved band file path
}

// ReadBand reads the scene's pixel QA band. The band must already exist in
// the metadata (generated by a prior run or delivered with the scene).
func ReadBand(fsys fsutil.FileSystem, m *espa.Metadata) (*Band, error) {
	bmeta, err := m.QABandByName(BandName)
	if err != nil {
		return nil, fmt.Errorf("pixel qa: %v", err)
	}
	if err := bmeta.CheckDataType(espa.TypeUINT16); err != nil {
		return nil, fmt.Errorf("pixel qa: %v", err)
	}

	path := m.ResolveFile(bmeta.FileName)
	data, err := espa.ReadUint16Band(fsys, path, bmeta.NLines, bmeta.NSamps)
	if err != nil {
		return nil, fmt.Errorf("pixel qa: %v", err)
	}
	monitoring.Logf("read %s: %dx%d pixels", BandName, bmeta.NLines, bmeta.NSamps)

	return &Band{
		Data:   data,
		NLines: bmeta.NLines,
		NSamps: bmeta.NSamps,
		Path:   path,
	}, nil
}
