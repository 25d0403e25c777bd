package classqa

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/l1qa"
	"github.com/eros-data/landsat.qa/internal/monitoring"
	"github.com/eros-data/landsat.qa/internal/version"
)

// repBandName is the reflectance band whose dimensions, short name, and
// pixel size the generated band inherits.
const repBandName = "band1"

// Result describes a band produced by Generate.
type Result struct {
	Path   string // band file written
	NLines int
	NSamps int
	Family l1qa.Family
}

// Generate classifies the scene's Level-1 QA band into a class QA band,
// writes the band file and its ENVI header next to the scene XML, and
// appends the band entry to the XML. The XML is only rewritten after the
// band file is complete.
func Generate(fsys fsutil.FileSystem, m *espa.Metadata) (*Result, error) {
	l1, err := l1qa.ReadPixelBand(fsys, m)
	if err != nil {
		return nil, err
	}
	rep, err := m.BandByName(repBandName)
	if err != nil {
		return nil, fmt.Errorf("representative band: %v", err)
	}
	if rep.NLines != l1.NLines || rep.NSamps != l1.NSamps {
		return nil, fmt.Errorf("band %s is %dx%d but the level-1 quality band is %dx%d",
			repBandName, rep.NLines, rep.NSamps, l1.NLines, l1.NSamps)
	}

	out := make([]uint8, len(l1.Data))
	for i, v := range l1.Data {
		out[i] = FromLevel1(v, l1.Layout)
	}

	base, err := espa.SceneBase(m.SourcePath)
	if err != nil {
		return nil, err
	}
	imgPath := base + "_" + BandName + ".img"
	if err := espa.WriteUint8Band(fsys, imgPath, out, l1.NLines, l1.NSamps); err != nil {
		return nil, err
	}

	band := bandMeta(rep, l1, filepath.Base(imgPath))
	if err := espa.WriteEnviHeader(fsys, imgPath, &band); err != nil {
		return nil, err
	}
	if err := espa.AppendBands(fsys, m.SourcePath, band); err != nil {
		return nil, err
	}
	monitoring.Logf("generated %s: %dx%d pixels, %s layout", BandName,
		l1.NLines, l1.NSamps, l1.Layout.Family())

	return &Result{
		Path:   imgPath,
		NLines: l1.NLines,
		NSamps: l1.NSamps,
		Family: l1.Layout.Family(),
	}, nil
}

func bandMeta(rep *espa.Band, l1 *l1qa.Band, fileName string) espa.Band {
	fill := int(Fill)
	short := rep.ShortName
	if len(short) > 3 {
		short = short[:3]
	}
	b := espa.Band{
		Product:        "level2_qa",
		Source:         "level1",
		Name:           BandName,
		Category:       "qa",
		DataType:       espa.TypeUINT8,
		NLines:         l1.NLines,
		NSamps:         l1.NSamps,
		FillValue:      &fill,
		ShortName:      short + "L2QA",
		LongName:       "level-2 quality band",
		FileName:       fileName,
		DataUnits:      "quality/feature classification",
		ValidRange:     &espa.ValidRange{Min: 0, Max: 255},
		AppVersion:     version.AppVersion("generate_class_based_qa"),
		ProductionDate: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if rep.PixelSize != nil {
		ps := *rep.PixelSize
		b.PixelSize = &ps
	}

	classes := make([]espa.ClassDesc, len(Values))
	for i, v := range Values {
		classes[i] = espa.ClassDesc{Num: int(v), Text: Name(v)}
	}
	b.Classes = &espa.ClassValues{Classes: classes}
	return b
}
