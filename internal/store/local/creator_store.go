package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"niche/internal/models"
	"niche/internal/store"
)

func (s *Store) CreateCreator(ctx context.Context, creator *models.Creator) error {
	if creator.ID == uuid.Nil {
		creator.ID = uuid.New()
	}
	if creator.HashtagCounts == nil {
		creator.HashtagCounts = map[string]int{}
	}
	if creator.Categories == nil {
		creator.Categories = []string{}
	}
	hashtags, err := encodeJSON(creator.HashtagCounts)
	if err != nil {
		return fmt.Errorf("encode hashtag counts: %w", err)
	}
	categories, err := encodeJSON(creator.Categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO creators (id, handle, bio, hashtag_counts, categories, categorized_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		creator.ID.String(), creator.Handle, creator.Bio, hashtags, categories, creator.CategorizedAt, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creator with handle %q already exists: %w", creator.Handle, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert creator: %w", err)
	}
	creator.CreatedAt = now
	creator.UpdatedAt = now
	return nil
}

func (s *Store) GetCreator(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+creatorColumns+` FROM creators WHERE id = ?`, id.String())
	creator, err := scanCreator(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get creator by id %s: %w", id, err)
	}
	return creator, nil
}

func (s *Store) GetCreatorByHandle(ctx context.Context, handle string) (*models.Creator, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+creatorColumns+` FROM creators WHERE handle = ?`, handle)
	creator, err := scanCreator(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get creator by handle %q: %w", handle, err)
	}
	return creator, nil
}

func (s *Store) ListCreators(ctx context.Context, limit, offset int) ([]*models.Creator, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+creatorColumns+` FROM creators ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		limit, offset)
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

func (s *Store) ListCreatorIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM creators ORDER BY created_at, rowid`)
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

func (s *Store) UpdateCreatorProfile(ctx context.Context, creator *models.Creator) error {
	if creator.HashtagCounts == nil {
		creator.HashtagCounts = map[string]int{}
	}
	hashtags, err := encodeJSON(creator.HashtagCounts)
	if err != nil {
		return fmt.Errorf("encode hashtag counts: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE creators SET bio = ?, hashtag_counts = ?, updated_at = ? WHERE id = ?`,
		creator.Bio, hashtags, now, creator.ID.String())
	if err != nil {
		return fmt.Errorf("failed to update creator %s: %w", creator.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	creator.UpdatedAt = now
	return nil
}

func (s *Store) UpdateCreatorCategories(ctx context.Context, id uuid.UUID, categories []string, categorizedAt time.Time) error {
	if categories == nil {
		categories = []string{}
	}
	encoded, err := encodeJSON(categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE creators SET categories = ?, categorized_at = ?, updated_at = ? WHERE id = ?`,
		encoded, categorizedAt.UTC(), categorizedAt.UTC(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update categories for creator %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("creator %s not found to update categories: %w", id, store.ErrNotFound)
	}
	return nil
}
