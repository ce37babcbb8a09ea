// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

// Package history persists per-run readiness snapshots into a SQLite
// database, so readiness trends can be tracked across runs. Each run stores
// its completion timestamp and full JSON report, plus one queryable
// ready/total row per country and category.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ipv6watch/ipv6watch/census"

	_ "modernc.org/sqlite"
)

// Store is a handle onto the history database.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates and migrates) the history database
// at the specified path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		resolved_at DATETIME NOT NULL,
		report JSON NOT NULL
	);

	CREATE TABLE IF NOT EXISTS readiness (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		country TEXT NOT NULL,
		category TEXT NOT NULL,
		ready INTEGER NOT NULL,
		total INTEGER NOT NULL,
		PRIMARY KEY (run_id, country, category)
	);

	CREATE INDEX IF NOT EXISTS idx_readiness_country ON readiness(country, category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot is one country/category readiness data point of a recorded run.
type Snapshot struct {
	Country  string
	Category string
	Ready    int
	Total    int
}

// RecordRun appends the resolved source as a new run, returning the run ID.
// The run timestamp is the source's LastResolved; recording an unresolved
// source is refused, as its snapshot rows would all be vacuously zero.
func (s *Store) RecordRun(ctx context.Context, source *census.Source) (int64, error) {
	if source.LastResolved == nil {
		return 0, fmt.Errorf("cannot record an unresolved source")
	}
	report, err := json.Marshal(source)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (resolved_at, report) VALUES (?, ?)`,
		source.LastResolved.UTC().Format(time.RFC3339Nano), report)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	for code, country := range source.Countries {
		for tag, category := range country.Categories {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO readiness (run_id, country, category, ready, total)
				 VALUES (?, ?, ?, ?, ?)`,
				runID, code, tag, category.ReadyCount(), category.TotalCount())
			if err != nil {
				return 0, fmt.Errorf("insert readiness for %s/%s: %w", code, tag, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return runID, nil
}

// Run returns the readiness snapshots and completion timestamp of the
// specified run.
func (s *Store) Run(ctx context.Context, runID int64) ([]Snapshot, time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx,
		`SELECT resolved_at FROM runs WHERE id = ?`, runID).Scan(&stamp)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query run %d: %w", runID, err)
	}
	resolvedAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("run %d has a broken timestamp: %w", runID, err)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT country, category, ready, total FROM readiness
		 WHERE run_id = ? ORDER BY country, category`, runID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query run %d: %w", runID, err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.Country, &snap.Category, &snap.Ready, &snap.Total); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan readiness row: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("query run %d: %w", runID, err)
	}
	return snapshots, resolvedAt, nil
}

// LatestRunID returns the ID of the most recently recorded run, or
// sql.ErrNoRows if the history is still empty.
func (s *Store) LatestRunID(ctx context.Context) (int64, error) {
	var runID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if err != nil {
		return 0, err
	}
	return runID, nil
}

// Report returns the stored JSON report of the specified run.
func (s *Store) Report(ctx context.Context, runID int64) ([]byte, error) {
	var report []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE id = ?`, runID).Scan(&report)
	if err != nil {
		return nil, fmt.Errorf("query report of run %d: %w", runID, err)
	}
	return report, nil
}
