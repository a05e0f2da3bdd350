package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tsawler/zonetext"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("extraction not found")

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	start_page INTEGER NOT NULL,
	end_page   INTEGER NOT NULL,
	language   TEXT NOT NULL,
	text       TEXT NOT NULL,
	degraded   INTEGER NOT NULL,
	warnings   TEXT NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_source ON extractions(source, created_at);
`

// Record is one archived extraction
type Record struct {
	ID        uuid.UUID
	Source    string
	StartPage int
	EndPage   int
	Language  string
	Text      string
	Degraded  bool
	Warnings  []zonetext.Warning
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Archive stores extraction results in SQLite.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive at path. Use ":memory:" for a
// throwaway archive.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save archives res with its warnings and returns the new record id.
func (a *Archive) Save(ctx context.Context, res *zonetext.Result, warnings []zonetext.Warning) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	if warnings == nil {
		warnings = []zonetext.Warning{}
	}
	warnJSON, err := json.Marshal(warnings)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode warnings: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO extractions
			(id, source, start_page, end_page, language, text, degraded, warnings, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), res.Source, res.StartPage, res.EndPage, string(res.Language), res.Text,
		res.Degraded, string(warnJSON), res.Elapsed.Milliseconds(), time.Now().UnixNano())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert extraction: %w", err)
	}
	return id, nil
}

// Get returns the record with the given id.
func (a *Archive) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, source, start_page, end_page, language, text, degraded, warnings, elapsed_ms, created_at
		FROM extractions WHERE id = ?`, id.String())

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// ListBySource returns every record for source, oldest first.
func (a *Archive) ListBySource(ctx context.Context, source string) ([]Record, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, source, start_page, end_page, language, text, degraded, warnings, elapsed_ms, created_at
		FROM extractions WHERE source = ? ORDER BY created_at, rowid`, source)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		rec       Record
		id        string
		warnJSON  string
		elapsedMS int64
		created   int64
	)
	err := s.Scan(&id, &rec.Source, &rec.StartPage, &rec.EndPage, &rec.Language, &rec.Text,
		&rec.Degraded, &warnJSON, &elapsedMS, &created)
	if err != nil {
		return nil, err
	}

	if rec.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(warnJSON), &rec.Warnings); err != nil {
		return nil, fmt.Errorf("decode warnings: %w", err)
	}
	rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	rec.CreatedAt = time.Unix(0, created)
	return &rec, nil
}
