package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"niche/internal/models"
	"niche/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS creators (
	id             UUID PRIMARY KEY,
	handle         TEXT NOT NULL UNIQUE,
	bio            TEXT,
	hashtag_counts JSONB NOT NULL DEFAULT '{}'::jsonb,
	categories     TEXT[] NOT NULL DEFAULT '{}',
	categorized_at TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS background_jobs (
	id         BIGSERIAL PRIMARY KEY,
	job_id     UUID NOT NULL UNIQUE,
	task_type  TEXT NOT NULL,
	payload    JSONB NOT NULL DEFAULT '{}'::jsonb,
	queue      TEXT NOT NULL,
	status     TEXT NOT NULL,
	creator_id UUID REFERENCES creators(id) ON DELETE SET NULL,
	last_error TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_background_jobs_creator ON background_jobs (creator_id);`

// StoreImpl implements store.Store using PostgreSQL.
type StoreImpl struct {
	db *pgxpool.Pool
}

var _ store.Store = (*StoreImpl)(nil)

// NewPrimaryStore creates a new PostgreSQL primary store implementation and
// makes sure the schema exists.
func NewPrimaryStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := dbpool.Exec(ctx, schema); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

// Ping checks the database connection.
func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection pool.
func (s *StoreImpl) Close() error {
	s.db.Close()
	return nil
}

// --- Helper Functions ---

const creatorColumns = `id, handle, bio, hashtag_counts, categories, categorized_at, created_at, updated_at`

// scanCreator scans a single row into a models.Creator.
// It expects the columns in the order of creatorColumns.
func scanCreator(row pgx.Row) (*models.Creator, error) {
	c := &models.Creator{}
	err := row.Scan(
		&c.ID,
		&c.Handle,
		&c.Bio,
		&c.HashtagCounts,
		&c.Categories,
		&c.CategorizedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return c, nil
}
