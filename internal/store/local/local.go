// Package local is a single-file SQLite backend for running niche without
// a Postgres server. It stores the same records as the primary store.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"niche/internal/models"
	"niche/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS creators (
	id             TEXT PRIMARY KEY,
	handle         TEXT NOT NULL COLLATE NOCASE UNIQUE,
	bio            TEXT,
	hashtag_counts TEXT NOT NULL DEFAULT '{}',
	categories     TEXT NOT NULL DEFAULT '[]',
	categorized_at TIMESTAMP,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS background_jobs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id     TEXT NOT NULL UNIQUE,
	task_type  TEXT NOT NULL,
	payload    TEXT NOT NULL DEFAULT '{}',
	queue      TEXT NOT NULL,
	status     TEXT NOT NULL,
	creator_id TEXT REFERENCES creators(id) ON DELETE SET NULL,
	last_error TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Store implements store.Store on SQLite.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// NewLocalStore opens (or creates) the SQLite database at path and applies
// the schema. ":memory:" gives a private in-memory database.
func NewLocalStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite database path cannot be empty")
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	// SQLite allows one writer; an in-memory database also exists per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// --- Helper Functions ---

const creatorColumns = `id, handle, bio, hashtag_counts, categories, categorized_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreator(row rowScanner) (*models.Creator, error) {
	var (
		c             models.Creator
		bio           sql.NullString
		hashtags      []byte
		categories    []byte
		categorizedAt sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.Handle, &bio, &hashtags, &categories, &categorizedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if bio.Valid {
		c.Bio = &bio.String
	}
	if categorizedAt.Valid {
		t := categorizedAt.Time
		c.CategorizedAt = &t
	}
	if err := json.Unmarshal(hashtags, &c.HashtagCounts); err != nil {
		return nil, fmt.Errorf("decode hashtag_counts for creator %s: %w", c.ID, err)
	}
	if err := json.Unmarshal(categories, &c.Categories); err != nil {
		return nil, fmt.Errorf("decode categories for creator %s: %w", c.ID, err)
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return &c, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
