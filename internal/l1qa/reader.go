package l1qa

import (
	"fmt"

	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

// Band names the Level-1 QA products carry in ESPA scene metadata.
const (
	PixelBandName  = "bqa_pixel"
	RadsatBandName = "bqa_radsat"
)

// Band is a whole Level-1 QA raster read through scene metadata, with the
// bit layout resolved from the scene's instrument.
type Band struct {
	Data   []uint16
	NLines int
	NSamps int
	Layout Layout
	Path   string // resolved band file path
}

// ReadPixelBand reads the scene's bqa_pixel band.
func ReadPixelBand(fsys fsutil.FileSystem, m *espa.Metadata) (*Band, error) {
	return readBand(fsys, m, PixelBandName)
}

// ReadRadsatBand reads the scene's bqa_radsat band.
func ReadRadsatBand(fsys fsutil.FileSystem, m *espa.Metadata) (*Band, error) {
	return readBand(fsys, m, RadsatBandName)
}

func readBand(fsys fsutil.FileSystem, m *espa.Metadata, name string) (*Band, error) {
	bmeta, err := m.QABandByName(name)
	if err != nil {
		return nil, fmt.Errorf("level-1 qa: %v", err)
	}
	if err := bmeta.CheckDataType(espa.TypeUINT16); err != nil {
		return nil, fmt.Errorf("level-1 qa: %v", err)
	}

	layout := Modern
	if m.LegacySensor() {
		layout = Legacy
	}

	path := m.ResolveFile(bmeta.FileName)
	data, err := espa.ReadUint16Band(fsys, path, bmeta.NLines, bmeta.NSamps)
	if err != nil {
		return nil, fmt.Errorf("level-1 qa: %v", err)
	}
	monitoring.Logf("read %s: %dx%d pixels, %s layout", name, bmeta.NLines, bmeta.NSamps, layout.Family())

	return &Band{
		Data:   data,
		NLines: bmeta.NLines,
		NSamps: bmeta.NSamps,
		Layout: layout,
		Path:   path,
	}, nil
}
