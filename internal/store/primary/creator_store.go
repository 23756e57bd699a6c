package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"niche/internal/models"
	"niche/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Creator Management ---

// CreateCreator inserts a new creator. A nil ID is replaced with a fresh UUID.
func (s *StoreImpl) CreateCreator(ctx context.Context, creator *models.Creator) error {
	query := `
		INSERT INTO creators (id, handle, bio, hashtag_counts, categories, categorized_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if creator.ID == uuid.Nil {
		creator.ID = uuid.New()
	}
	if creator.HashtagCounts == nil {
		creator.HashtagCounts = map[string]int{}
	}
	if creator.Categories == nil {
		creator.Categories = []string{}
	}
	now := time.Now().UTC()

	err := s.db.QueryRow(ctx, query,
		creator.ID, creator.Handle, creator.Bio, creator.HashtagCounts,
		creator.Categories, creator.CategorizedAt, now, now,
	).Scan(&creator.CreatedAt, &creator.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("creator with handle %q already exists: %w", creator.Handle, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert creator: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetCreator(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE id = $1`
	creator, err := scanCreator(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get creator by id %s: %w", id, err)
	}
	return creator, nil
}

func (s *StoreImpl) GetCreatorByHandle(ctx context.Context, handle string) (*models.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators WHERE lower(handle) = lower($1)`
	creator, err := scanCreator(s.db.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get creator by handle %q: %w", handle, err)
	}
	return creator, nil
}

func (s *StoreImpl) ListCreators(ctx context.Context, limit, offset int) ([]*models.Creator, error) {
	query := `SELECT ` + creatorColumns + ` FROM creators ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	defer rows.Close()

	creators := []*models.Creator{}
	for rows.Next() {
		creator, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed scanning creator row: %w", err)
		}
		creators = append(creators, creator)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creator rows: %w", err)
	}
	return creators, nil
}

func (s *StoreImpl) ListCreatorIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM creators ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed scanning creator id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creator ids: %w", err)
	}
	return ids, nil
}

func (s *StoreImpl) UpdateCreatorProfile(ctx context.Context, creator *models.Creator) error {
	query := `
		UPDATE creators SET
			bio = $1,
			hashtag_counts = $2,
			updated_at = $3
		WHERE id = $4
		RETURNING updated_at`

	if creator.HashtagCounts == nil {
		creator.HashtagCounts = map[string]int{}
	}
	err := s.db.QueryRow(ctx, query, creator.Bio, creator.HashtagCounts, time.Now().UTC(), creator.ID).
		Scan(&creator.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to update creator %s: %w", creator.ID, err)
	}
	return nil
}

func (s *StoreImpl) UpdateCreatorCategories(ctx context.Context, id uuid.UUID, categories []string, categorizedAt time.Time) error {
	if categories == nil {
		categories = []string{}
	}
	query := `UPDATE creators SET categories = $1, categorized_at = $2, updated_at = $2 WHERE id = $3`
	cmdTag, err := s.db.Exec(ctx, query, categories, categorizedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update categories for creator %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("creator %s not found to update categories: %w", id, store.ErrNotFound)
	}
	return nil
}
