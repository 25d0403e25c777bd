// Command qa-catalog manages the sqlite run catalog: schema migrations and
// listing recorded QA tool runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/eros-data/landsat.qa/internal/catalog"
	"github.com/eros-data/landsat.qa/internal/version"
)

var (
	dbPath      = flag.String("db", "", "sqlite catalog file (required)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *dbPath == "" {
		log.Fatalf("--db is required")
	}
	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	db, err := catalog.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer db.Close()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "migrate":
		handleMigrate(db, args)
	case "runs":
		handleRuns(db, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleMigrate(db *catalog.DB, args []string) {
	if len(args) != 1 {
		log.Fatalf("usage: qa-catalog --db=<path> migrate <up|down|version>")
	}

	switch args[0] {
	case "up":
		if err := db.MigrateUp(); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		fmt.Println("migrations applied")
	case "down":
		if err := db.MigrateDown(); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		fmt.Println("rolled back one migration")
	case "version":
		v, dirty, err := db.MigrateVersion()
		if err != nil {
			log.Fatalf("migrate version: %v", err)
		}
		if dirty {
			fmt.Printf("version %d (dirty)\n", v)
		} else {
			fmt.Printf("version %d\n", v)
		}
	default:
		log.Fatalf("unknown migrate action %q (expected up, down, or version)", args[0])
	}
}

func handleRuns(db *catalog.DB, args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("n", 20, "maximum runs to list")
	scene := fs.String("scene", "", "only list runs for this scene")
	fs.Parse(args)

	var runs []catalog.Run
	var err error
	if *scene != "" {
		runs, err = db.SceneRuns(*scene)
	} else {
		runs, err = db.RecentRuns(*limit)
	}
	if err != nil {
		log.Fatalf("failed to list runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return
	}

	for _, r := range runs {
		fmt.Println(formatRun(r))
	}
}

func formatRun(r catalog.Run) string {
	ts := time.Unix(0, r.CreatedAtNs).UTC().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%s  %-18s %-14s %5dx%-5d %5dms  %s",
		ts, r.Tool, r.Band, r.NLines, r.NSamps, r.DurationMS, r.Scene)
	if r.Params != "" {
		line += "  [" + r.Params + "]"
	}
	return line
}

func printUsage() {
	fmt.Println(`qa-catalog - run catalog maintenance

Usage: qa-catalog --db=<path> <command> [options]

Commands:
  migrate up        Apply pending schema migrations
  migrate down      Roll back the most recent migration
  migrate version   Show the current schema version
  runs [-n N]       List recent runs, newest first
  runs -scene <xml> List runs recorded for one scene

Flags:
  --db <path>       sqlite catalog file (required)
  --version         Print version and exit`)
}
