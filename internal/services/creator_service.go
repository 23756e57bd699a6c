package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"niche/internal/models"
	"niche/internal/store"
)

const maxHandleLength = 64

type CreatorService struct {
	store store.CreatorStore
}

func NewCreatorService(cs store.CreatorStore) *CreatorService {
	return &CreatorService{store: cs}
}

// AddCreatorParams describes a new creator profile.
type AddCreatorParams struct {
	Handle        string
	Bio           *string
	HashtagCounts map[string]int
}

// AddCreator validates and stores a new creator. The handle is normalized
// with NormalizeHandle and hashtag keys with NormalizeHashtagCounts.
func (s *CreatorService) AddCreator(ctx context.Context, params AddCreatorParams) (*models.Creator, error) {
	handle, err := NormalizeHandle(params.Handle)
	if err != nil {
		return nil, err
	}
	hashtags, err := NormalizeHashtagCounts(params.HashtagCounts)
	if err != nil {
		return nil, err
	}

	creator := &models.Creator{
		Handle:        handle,
		Bio:           trimBio(params.Bio),
		HashtagCounts: hashtags,
		Categories:    []string{},
	}
	if err := s.store.CreateCreator(ctx, creator); err != nil {
		return nil, fmt.Errorf("create creator %q: %w", handle, err)
	}
	return creator, nil
}

func (s *CreatorService) GetCreator(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	creator, err := s.store.GetCreator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get creator %s: %w", id, err)
	}
	return creator, nil
}

func (s *CreatorService) GetCreatorByHandle(ctx context.Context, handle string) (*models.Creator, error) {
	normalized, err := NormalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	creator, err := s.store.GetCreatorByHandle(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("get creator %q: %w", normalized, err)
	}
	return creator, nil
}

// ResolveCreator accepts either a creator UUID or a handle.
func (s *CreatorService) ResolveCreator(ctx context.Context, ref string) (*models.Creator, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.GetCreator(ctx, id)
	}
	return s.GetCreatorByHandle(ctx, ref)
}

func (s *CreatorService) ListCreators(ctx context.Context, limit, offset int) ([]*models.Creator, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	creators, err := s.store.ListCreators(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators from store: %w", err)
	}
	return creators, nil
}

// UpdateProfile replaces a creator's bio and hashtag counts. Existing
// categories are kept until the creator is categorized or reviewed again.
func (s *CreatorService) UpdateProfile(ctx context.Context, id uuid.UUID, bio *string, hashtagCounts map[string]int) (*models.Creator, error) {
	hashtags, err := NormalizeHashtagCounts(hashtagCounts)
	if err != nil {
		return nil, err
	}
	creator, err := s.store.GetCreator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get creator %s: %w", id, err)
	}
	creator.Bio = trimBio(bio)
	creator.HashtagCounts = hashtags
	if err := s.store.UpdateCreatorProfile(ctx, creator); err != nil {
		return nil, fmt.Errorf("update creator %s: %w", id, err)
	}
	return creator, nil
}

// NormalizeHandle trims whitespace and a leading "@" and lower-cases the handle.
func NormalizeHandle(handle string) (string, error) {
	h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
	if h == "" {
		return "", fmt.Errorf("%w: handle is required", models.ErrValidation)
	}
	if len(h) > maxHandleLength {
		return "", fmt.Errorf("%w: handle is longer than %d bytes", models.ErrValidation, maxHandleLength)
	}
	if strings.IndexFunc(h, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: handle %q contains whitespace", models.ErrValidation, h)
	}
	return h, nil
}

// NormalizeHashtagCounts strips surrounding whitespace and a leading "#" from
// each key and sums counts of keys that become equal. Case is preserved; the
// scorer folds case itself. Negative counts are rejected; sums saturate at math.MaxInt.
func NormalizeHashtagCounts(counts map[string]int) (map[string]int, error) {
	out := make(map[string]int, len(counts))
	for tag, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("%w: hashtag %q has negative count %d", models.ErrValidation, tag, n)
		}
		key := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if key == "" {
			continue
		}
		if out[key] > math.MaxInt-n {
			out[key] = math.MaxInt
		} else {
			out[key] += n
		}
	}
	return out, nil
}

func trimBio(bio *string) *string {
	if bio == nil {
		return nil
	}
	b := strings.TrimSpace(*bio)
	if b == "" {
		return nil
	}
	return &b
}
