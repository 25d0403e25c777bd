// Package catalog records QA tool invocations in a sqlite database so
// production history can be inspected after the fact. The catalog is
// append-only: rows are inserted once and never updated.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/eros-data/landsat.qa/internal/monitoring"
)

type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the catalog database at path and
// applies the session pragmas. Run MigrateUp before recording against a
// fresh database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &DB{db}, nil
}

// Run is one recorded invocation of a QA tool against a scene.
type Run struct {
	ID          string // generated on insert when empty
	Tool        string // e.g. "generate-pixel-qa"
	Scene       string // scene metadata path
	Band        string // band produced or modified
	NLines      int
	NSamps      int
	Params      string // tool parameters, e.g. "bit=5 distance=3"
	DurationMS  int64
	CreatedAtNs int64 // generated on insert when zero
}

// RecordRun inserts a run row, generating ID and CreatedAtNs if unset.
func (db *DB) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAtNs == 0 {
		run.CreatedAtNs = time.Now().UnixNano()
	}

	_, err := db.Exec(`
		INSERT INTO qa_runs (run_id, tool, scene, band, nlines, nsamps, params, duration_ms, created_at_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Tool, run.Scene, run.Band, run.NLines, run.NSamps,
		run.Params, run.DurationMS, run.CreatedAtNs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, tool, scene, band, nlines, nsamps, params, duration_ms, created_at_ns
		FROM qa_runs
		ORDER BY created_at_ns DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Tool, &r.Scene, &r.Band, &r.NLines,
			&r.NSamps, &r.Params, &r.DurationMS, &r.CreatedAtNs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecordOrLog opens the catalog at path, ensures the schema, records run,
// and closes the database. An empty path is a no-op. Failures are logged
// and swallowed: a finished QA product is never failed by history
// bookkeeping.
func RecordOrLog(path string, run *Run) {
	if path == "" {
		return
	}
	db, err := Open(path)
	if err != nil {
		monitoring.Logf("catalog: %v", err)
		return
	}
	defer db.Close()

	if err := db.MigrateUp(); err != nil {
		monitoring.Logf("catalog: %v", err)
		return
	}
	if err := db.RecordRun(run); err != nil {
		monitoring.Logf("catalog: %v", err)
	}
}

// SceneRuns returns every run recorded for a scene, newest first.
func (db *DB) SceneRuns(scene string) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, tool, scene, band, nlines, nsamps, params, duration_ms, created_at_ns
		FROM qa_runs
		WHERE scene = ?
		ORDER BY created_at_ns DESC`, scene)
	if err != nil {
		return nil, fmt.Errorf("failed to query scene runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Tool, &r.Scene, &r.Band, &r.NLines,
			&r.NSamps, &r.Params, &r.DurationMS, &r.CreatedAtNs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
