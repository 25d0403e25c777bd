// Command qa-plot renders a quicklook PNG of a scene's QA band. Class
// bands draw one color per class; pixel QA bands draw a chosen flag bit as
// a binary mask.
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
	"github.com/eros-data/landsat.qa/internal/pixelqa"
	"github.com/eros-data/landsat.qa/internal/render"
	"github.com/eros-data/landsat.qa/internal/version"
)

var (
	xmlPath     = flag.String("xml", "", "scene metadata XML file (required)")
	bandName    = flag.String("band", pixelqa.BandName, "QA band to plot: pixel_qa or class_based_qa")
	bit         = flag.Int("bit", pixelqa.BitCloud, "flag bit to plot for pixel_qa, 0-15")
	outPath     = flag.String("out", "", "output PNG file (required)")
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
	if *outPath == "" {
		log.Fatalf("--out is required")
	}

	cfg := config.EmptyToolConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadToolConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if !filepath.IsAbs(*outPath) {
		*outPath = filepath.Join(cfg.GetOutputDir(), *outPath)
	}

	fsys := fsutil.OSFileSystem{}
	m, err := espa.ParseMetadata(fsys, *xmlPath)
	if err != nil {
		log.Fatalf("failed to parse scene metadata: %v", err)
	}

	switch *bandName {
	case pixelqa.BandName:
		band, err := pixelqa.ReadBand(fsys, m)
		if err != nil {
			log.Fatalf("failed to read pixel QA band: %v", err)
		}
		family := l1qa.FamilyModern
		if m.LegacySensor() {
			family = l1qa.FamilyLegacy
		}
		if *bit < 0 || *bit >= pixelqa.NumBits {
			log.Fatalf("--bit must be 0-%d, got %d", pixelqa.NumBits-1, *bit)
		}
		title := fmt.Sprintf("%s: %s", pixelqa.BandName, pixelqa.BitDescriptions(family)[*bit])
		if err := render.BitQuicklook(fsys, *outPath, title, band.Data, *bit, band.NLines, band.NSamps); err != nil {
			log.Fatalf("failed to render quicklook: %v", err)
		}
	case classqa.BandName:
		band, err := classqa.ReadBand(fsys, m)
		if err != nil {
			log.Fatalf("failed to read class QA band: %v", err)
		}
		if err := render.ClassQuicklook(fsys, *outPath, classqa.BandName, band.Data, band.NLines, band.NSamps); err != nil {
			log.Fatalf("failed to render quicklook: %v", err)
		}
	default:
		log.Fatalf("unknown QA band %q (expected %s or %s)", *bandName, pixelqa.BandName, classqa.BandName)
	}

	log.Printf("wrote %s", *outPath)
}
