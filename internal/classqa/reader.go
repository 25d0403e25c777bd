package classqa

import (
	"fmt"

	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

// Band is a whole class QA raster read through scene metadata.
type Band struct {
	Data   []uint8
	NLines int
	NSamps int
	Path   string // resolved band file path
}

// ReadBand reads the scene's class QA band.
func ReadBand(fsys fsutil.FileSystem, m *espa.Metadata) (*Band, error) {
	bmeta, err := m.QABandByName(BandName)
	if err != nil {
		return nil, fmt.Errorf("class qa: %v", err)
	}
	if err := bmeta.CheckDataType(espa.TypeUINT8); err != nil {
		return nil, fmt.Errorf("class qa: %v", err)
	}

	path := m.ResolveFile(bmeta.FileName)
	data, err := espa.ReadUint8Band(fsys, path, bmeta.NLines, bmeta.NSamps)
	if err != nil {
		return nil, fmt.Errorf("class qa: %v", err)
	}
	monitoring.Logf("read %s: %dx%d pixels", BandName, bmeta.NLines, bmeta.NSamps)

	return &Band{
		Data:   data,
		NLines: bmeta.NLines,
		NSamps: bmeta.NSamps,
		Path:   path,
	}, nil
}
