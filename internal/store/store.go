// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the generation run history in a SQLite
// database so past posts can be listed and inspected from the CLI.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const dbFile = "history.db"

// Store manages the run history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.Dir/history.db,
// creating the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			file_path TEXT,
			word_count INTEGER,
			duration_seconds REAL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run into the history. A zero ID or CreatedAt is
// filled in; the populated record is returned.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (types.RunRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, topic, title, file_path, word_count, duration_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Topic, rec.Title, rec.FilePath, rec.WordCount,
		rec.Duration, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("recording run: %w", err)
	}
	return rec, nil
}

// List returns the most recent runs, newest first. A limit of 0 means
// the configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, title, file_path, word_count, duration_seconds, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ByTopic returns runs whose topic contains the given substring,
// newest first.
func (s *Store) ByTopic(ctx context.Context, topic string, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, title, file_path, word_count, duration_seconds, created_at
		 FROM runs WHERE topic LIKE ? ORDER BY created_at DESC LIMIT ?`,
		"%"+topic+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs by topic: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Prune deletes all but the newest keep runs and reports how many rows
// were removed. A keep of 0 means the configured maximum.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		keep = s.maxResults
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return int(n), nil
}

func scanRuns(rows *sql.Rows) ([]types.RunRecord, error) {
	var records []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Topic, &rec.Title, &rec.FilePath,
			&rec.WordCount, &rec.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		rec.CreatedAt = t
		records = append(records, rec)
	}
	return records, rows.Err()
}
