// Command dilate-class-qa grows one class value of a scene's class QA band
// by a Chebyshev distance and rewrites the band file in place. Fill pixels
// never change.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/eros-data/landsat.qa/internal/catalog"
	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/config"
	"github.com/eros-data/landsat.qa/internal/dilate"
	"github.com/eros-data/landsat.qa/internal/espa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/version"
)

var (
	xmlPath     = flag.String("xml", "", "scene metadata XML file (required)")
	classValue  = flag.Int("class", -1, "class value to dilate, 0-4 (required)")
	distance    = flag.Int("distance", -1, "dilation distance in pixels (required)")
	workers     = flag.Int("workers", 0, "row workers, 0 means one per CPU")
	catalogPath = flag.String("catalog", "", "sqlite run catalog (empty disables recording)")
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
	if *classValue < int(classqa.Clear) || *classValue > int(classqa.Cloud) {
		log.Fatalf("--class must be %d-%d, got %d", classqa.Clear, classqa.Cloud, *classValue)
	}
	if *distance < 0 {
		log.Fatalf("--distance must be non-negative, got %d", *distance)
	}

	cfg := config.EmptyToolConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadToolConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *catalogPath == "" {
		*catalogPath = cfg.GetCatalogPath()
	}
	if *workers == 0 {
		*workers = cfg.GetWorkers()
	}

	start := time.Now()
	fsys := fsutil.OSFileSystem{}

	m, err := espa.ParseMetadata(fsys, *xmlPath)
	if err != nil {
		log.Fatalf("failed to parse scene metadata: %v", err)
	}

	band, err := classqa.ReadBand(fsys, m)
	if err != nil {
		log.Fatalf("failed to read class QA band: %v", err)
	}

	out := dilate.ClassValue(band.Data, uint8(*classValue), *distance, band.NLines, band.NSamps, *workers)

	if err := espa.WriteUint8Band(fsys, band.Path, out, band.NLines, band.NSamps); err != nil {
		log.Fatalf("failed to rewrite class QA band: %v", err)
	}

	catalog.RecordOrLog(*catalogPath, &catalog.Run{
		Tool:       "dilate-class-qa",
		Scene:      *xmlPath,
		Band:       classqa.BandName,
		NLines:     band.NLines,
		NSamps:     band.NSamps,
		Params:     fmt.Sprintf("class=%d distance=%d", *classValue, *distance),
		DurationMS: time.Since(start).Milliseconds(),
	})

	log.Printf("dilated class %s of %s by %d pixels (%dx%d)",
		classqa.Name(uint8(*classValue)), band.Path, *distance, band.NLines, band.NSamps)
}
