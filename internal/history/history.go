// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists batch run reports in a local SQLite ledger so
// past conversions can be inspected after the console output is gone.
// See docs/ARCHITECTURE § Run History.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docbatch/pkg/types"
)

// DefaultPath is the ledger database file used when none is configured.
const DefaultPath = "docbatch.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger at cfg.Path and bootstraps the
// schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_dir TEXT NOT NULL,
			pattern TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			converted INTEGER NOT NULL,
			partial INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			total INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source TEXT NOT NULL,
			status TEXT NOT NULL,
			saved TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_run_id ON jobs(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record appends one run report to the ledger and returns the run ID.
func (s *Store) Record(ctx context.Context, report types.RunReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source_dir, pattern, started_at, finished_at, converted, partial, failed, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.SourceDir, report.Pattern,
		report.StartedAt.Format(time.RFC3339), report.FinishedAt.Format(time.RFC3339),
		report.Converted(), report.Partial(), report.Failed(), report.Total(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, outcome := range report.Outcomes {
		saved, err := json.Marshal(outcome.Saved)
		if err != nil {
			return 0, fmt.Errorf("marshaling saved targets: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO jobs (run_id, source, status, saved, error) VALUES (?, ?, ?, ?, ?)`,
			runID, outcome.Job.Source, string(outcome.Status), string(saved), outcome.Error,
		); err != nil {
			return 0, fmt.Errorf("inserting job for %s: %w", outcome.Job.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary is one row of the runs listing.
type RunSummary struct {
	ID        int64     `json:"id"`
	SourceDir string    `json:"source_dir"`
	Pattern   string    `json:"pattern"`
	StartedAt time.Time `json:"started_at"`
	Converted int       `json:"converted"`
	Partial   int       `json:"partial"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
}

// Runs lists the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_dir, pattern, started_at, converted, partial, failed, total
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		if err := rows.Scan(&r.ID, &r.SourceDir, &r.Pattern, &started,
			&r.Converted, &r.Partial, &r.Failed, &r.Total); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// JobRecord is one per-file outcome of a recorded run.
type JobRecord struct {
	Source string   `json:"source"`
	Status string   `json:"status"`
	Saved  []string `json:"saved,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Jobs returns the per-file outcomes of one run, in processing order.
func (s *Store) Jobs(ctx context.Context, runID int64) ([]JobRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, status, saved, error FROM jobs WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying jobs for run %d: %w", runID, err)
	}
	defer rows.Close()

	var jobs []JobRecord
	for rows.Next() {
		var j JobRecord
		var saved string
		if err := rows.Scan(&j.Source, &j.Status, &saved, &j.Error); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		if saved != "" {
			if err := json.Unmarshal([]byte(saved), &j.Saved); err != nil {
				return nil, fmt.Errorf("unmarshaling saved targets: %w", err)
			}
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
