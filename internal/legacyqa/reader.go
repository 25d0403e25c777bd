package legacyqa

import (
	"fmt"

	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

// Band names the legacy masks carry in ESPA scene metadata.
const (
	LedapsBandName = "sr_cloud_qa"
	LasrcBandName  = "sr_aerosol"
)

// Band is a whole legacy QA raster read through scene metadata.
type Band struct {
	Data   []uint8
	NLines int
	NSamps int
	Path   string // resolved band file path
}

// ReadLedapsBand reads the scene's LEDAPS cloud mask.
func ReadLedapsBand(fsys fsutil.FileSystem, m *espa.Metadata) (*Band, error) {
	return readBand(fsys, m, LedapsBandName)
}

// ReadLasrcBand reads the scene's LaSRC aerosol mask.
func ReadLasrcBand(fsys fsutil.FileSystem, m *espa.Metadata) (*Band, error) {
	return readBand(fsys, m, LasrcBandName)
}

func readBand(fsys fsutil.FileSystem, m *espa.Metadata, name string) (*Band, error) {
	bmeta, err := m.QABandByName(name)
	if err != nil {
		return nil, fmt.Errorf("legacy qa: %v", err)
	}
	if err := bmeta.CheckDataType(espa.TypeUINT8); err != nil {
		return nil, fmt.Errorf("legacy qa: %v", err)
	}

	path := m.ResolveFile(bmeta.FileName)
	data, err := espa.ReadUint8Band(fsys, path, bmeta.NLines, bmeta.NSamps)
	if err != nil {
		return nil, fmt.Errorf("legacy qa: %v", err)
	}
	monitoring.Logf("read %s: %dx%d pixels", name, bmeta.NLines, bmeta.NSamps)

	return &Band{
		Data:   data,
		NLines: bmeta.NLines,
		NSamps: bmeta.NSamps,
		Path:   path,
	}, nil
}
