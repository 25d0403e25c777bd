package pixelqa

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
const repBandName = "b1"

// FromLevel1 classifies one Level-1 QA value into a pixel QA word. Fill
// short-circuits everything else; otherwise the shadow, snow, and cloud
// bits are set independently from their Level-1 fields, and any of them
// clears the clear bit. The cloud confidence field is copied verbatim, with
// high confidence also clearing the clear bit. Cirrus confidence and
// terrain occlusion are copied for modern sensors and never touch the
// clear bit.
func FromLevel1(v uint16, layout l1qa.Layout) uint16 {
	if layout.IsFill(v) {
		return 1 << BitFill
	}

	out := uint16(1 << BitClear)
	if layout.CloudShadowConfidence(v) == l1qa.ConfHigh {
		out &^= 1 << BitClear
		out |= 1 << BitCloudShadow
	}
	if layout.SnowIceConfidence(v) == l1qa.ConfHigh {
		out &^= 1 << BitClear
		out |= 1 << BitSnow
	}
	if layout.IsCloud(v) {
		out &^= 1 << BitClear
		out |= 1 << BitCloud
	}

	conf := layout.CloudConfidence(v)
	out |= uint16(conf) << cloudConfShift
	if conf == l1qa.ConfHigh {
		out &^= 1 << BitClear
	}

	if layout.HasCirrus() {
		out |= uint16(layout.CirrusConfidence(v)) << cirrusConfShift
		if layout.IsTerrainOccluded(v) {
			out |= 1 << BitTerrainOcclusion
		}
	}
	return out
}

// Result describes a band produced by Generate.
type Result struct {
	Path   string // band file written
	NLines int
	NSamps int
	Family l1qa.Family
}

// Generate classifies the scene's Level-1 QA band into a pixel QA band,
// writes the band file and its ENVI header next to the scene XML, and
// appends the band entry to the XML. The XML is only rewritten after the
// band file is complete, so a failure never leaves the metadata pointing
// at a half-written band.
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

	out := make([]uint16, len(l1.Data))
	for i, v := range l1.Data {
		out[i] = FromLevel1(v, l1.Layout)
	}

	base, err := espa.SceneBase(m.SourcePath)
	if err != nil {
		return nil, err
	}
	imgPath := base + "_" + BandName + ".img"
	if err := espa.WriteUint16Band(fsys, imgPath, out, l1.NLines, l1.NSamps); err != nil {
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
	fill := FillValue
	short := rep.ShortName
	if len(short) > 4 {
		short = short[:4]
	}
	b := espa.Band{
		Product:        "level2_qa",
		Source:         "level1",
		Name:           BandName,
		Category:       "qa",
		DataType:       espa.TypeUINT16,
		NLines:         l1.NLines,
		NSamps:         l1.NSamps,
		FillValue:      &fill,
		ShortName:      short + "PQA",
		LongName:       "level-2 pixel quality band",
		FileName:       fileName,
		DataUnits:      "quality/feature classification",
		AppVersion:     version.AppVersion("generate_pixel_qa"),
		ProductionDate: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if rep.PixelSize != nil {
		ps := *rep.PixelSize
		b.PixelSize = &ps
	}

	desc := BitDescriptions(l1.Layout.Family())
	bits := make([]espa.BitDesc, len(desc))
	for i, text := range desc {
		bits[i] = espa.BitDesc{Num: i, Text: text}
	}
	b.Bitmap = &espa.Bitmap{Bits: bits}
	return b
}
