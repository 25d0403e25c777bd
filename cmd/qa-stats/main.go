// Command qa-stats prints the pixel accounting of a scene's QA band: class
// or flag bit populations with cloud cover and a per-row cloud profile for
// the generated bands, and flag populations for the legacy sr_cloud_qa and
// sr_aerosol masks. With --report it also writes a standalone HTML bar
// chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/config"
	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/l1qa"
	"github.com/eros-data/landsat.qa/internal/legacyqa"
	"github.com/eros-data/landsat.qa/internal/pixelqa"
	"github.com/eros-data/landsat.qa/internal/qastats"
	"github.com/eros-data/landsat.qa/internal/version"
)

var (
	xmlPath     = flag.String("xml", "", "scene metadata XML file (required)")
	bandName    = flag.String("band", pixelqa.BandName, "QA band to account: pixel_qa, class_based_qa, sr_cloud_qa or sr_aerosol")
	reportPath  = flag.String("report", "", "write an HTML report to this file")
	configPath  = flag.String("config", "", "JSON settings file")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *xmlPath == "" {
		log.Fatalf("--xml is required")
	}

	cfg := config.EmptyToolConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadToolConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *reportPath != "" && !filepath.IsAbs(*reportPath) {
		*reportPath = filepath.Join(cfg.GetOutputDir(), *reportPath)
	}

	fsys := fsutil.OSFileSystem{}
	m, err := espa.ParseMetadata(fsys, *xmlPath)
	if err != nil {
		log.Fatalf("failed to parse scene metadata: %v", err)
	}
	scene := filepath.Base(*xmlPath)

	switch *bandName {
	case pixelqa.BandName:
		pixelStats(fsys, m, scene)
	case classqa.BandName:
		classStats(fsys, m, scene)
	case legacyqa.LedapsBandName:
		ledapsStats(fsys, m, scene)
	case legacyqa.LasrcBandName:
		lasrcStats(fsys, m, scene)
	default:
		log.Fatalf("unknown QA band %q (expected %s, %s, %s or %s)", *bandName,
			pixelqa.BandName, classqa.BandName, legacyqa.LedapsBandName, legacyqa.LasrcBandName)
	}
}

func pixelStats(fsys fsutil.FileSystem, m *espa.Metadata, scene string) {
	band, err := pixelqa.ReadBand(fsys, m)
	if err != nil {
		log.Fatalf("failed to read pixel QA band: %v", err)
	}

	family := l1qa.FamilyModern
	if m.LegacySensor() {
		family = l1qa.FamilyLegacy
	}

	st := qastats.CountPixelFlags(band.Data, family)

	fmt.Printf("%s %dx%d (%s layout)\n", pixelqa.BandName, band.NLines, band.NSamps, family)
	for _, b := range st.Bits {
		fmt.Printf("  %-18s %12d\n", b.Name, b.Count)
	}
	fmt.Printf("cloud confidence   none=%d low=%d moderate=%d high=%d\n",
		st.CloudConfidence[0], st.CloudConfidence[1], st.CloudConfidence[2], st.CloudConfidence[3])
	if family == l1qa.FamilyModern {
		fmt.Printf("cirrus confidence  none=%d low=%d moderate=%d high=%d\n",
			st.CirrusConfidence[0], st.CirrusConfidence[1], st.CirrusConfidence[2], st.CirrusConfidence[3])
	}
	fmt.Printf("cloud cover %.2f%% of non-fill pixels\n", st.CloudCover)

	printProfile(qastats.RowCloudPixelFraction(band.Data, band.NLines, band.NSamps))

	if *reportPath != "" {
		if err := qastats.WritePixelReport(fsys, *reportPath, scene, st); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
	}
}

func classStats(fsys fsutil.FileSystem, m *espa.Metadata, scene string) {
	band, err := classqa.ReadBand(fsys, m)
	if err != nil {
		log.Fatalf("failed to read class QA band: %v", err)
	}

	st := qastats.CountClasses(band.Data)

	fmt.Printf("%s %dx%d\n", classqa.BandName, band.NLines, band.NSamps)
	for _, c := range st.Counts {
		fmt.Printf("  %-18s %12d (%.2f%%)\n", c.Name, c.Count, 100*c.Fraction)
	}
	if st.Unknown > 0 {
		fmt.Printf("  %-18s %12d\n", "unknown", st.Unknown)
	}
	fmt.Printf("cloud cover %.2f%% of non-fill pixels, %.2f%% including shadow\n",
		st.CloudCover, st.CloudShadowCover)

	printProfile(qastats.RowCloudClassFraction(band.Data, band.NLines, band.NSamps))

	if *reportPath != "" {
		if err := qastats.WriteClassReport(fsys, *reportPath, scene, st); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
	}
}

func ledapsStats(fsys fsutil.FileSystem, m *espa.Metadata, scene string) {
	band, err := legacyqa.ReadLedapsBand(fsys, m)
	if err != nil {
		log.Fatalf("failed to read LEDAPS cloud mask: %v", err)
	}

	st := qastats.CountLedapsFlags(band.Data)

	fmt.Printf("%s %dx%d\n", legacyqa.LedapsBandName, band.NLines, band.NSamps)
	for _, f := range st.Flags {
		fmt.Printf("  %-18s %12d\n", f.Name, f.Count)
	}

	maskReport(fsys, legacyqa.LedapsBandName, scene, st)
}

func lasrcStats(fsys fsutil.FileSystem, m *espa.Metadata, scene string) {
	band, err := legacyqa.ReadLasrcBand(fsys, m)
	if err != nil {
		log.Fatalf("failed to read LaSRC aerosol mask: %v", err)
	}

	st := qastats.CountLasrcFlags(band.Data)

	fmt.Printf("%s %dx%d\n", legacyqa.LasrcBandName, band.NLines, band.NSamps)
	fmt.Printf("  %-18s %12d\n", "fill", st.Fill)
	for _, f := range st.Flags {
		fmt.Printf("  %-18s %12d\n", f.Name, f.Count)
	}
	fmt.Printf("aerosol level      climatology=%d low=%d moderate=%d high=%d\n",
		st.AerosolLevels[0], st.AerosolLevels[1], st.AerosolLevels[2], st.AerosolLevels[3])

	maskReport(fsys, legacyqa.LasrcBandName, scene, st)
}

func maskReport(fsys fsutil.FileSystem, band, scene string, st *qastats.MaskStats) {
	if *reportPath == "" {
		return
	}
	if err := qastats.WriteMaskReport(fsys, *reportPath, scene, band, st); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
}

func printProfile(rows []float64) {
	fmt.Println(profileLine(rows))
}

func profileLine(rows []float64) string {
	p := qastats.SummarizeProfile(rows)
	return fmt.Sprintf("row cloud profile  mean=%.4f sd=%.4f p5=%.4f p50=%.4f p95=%.4f",
		p.Mean, p.StdDev, p.P5, p.P50, p.P95)
}
