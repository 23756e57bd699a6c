package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"niche/internal/metrics"
	"niche/internal/models"
	"niche/internal/store"
	"niche/pkg/categorizer"
)

// CreatorCategorization is the outcome of scoring one stored creator.
type CreatorCategorization struct {
	Creator    *models.Creator             `json:"creator"`
	Previous   []string                    `json:"previous"`
	Categories []string                    `json:"categories"`
	Matches    []categorizer.CategoryMatch `json:"matches"`
	Changed    bool                        `json:"changed"`
	Applied    bool                        `json:"applied"`
}

// CreatorReview is the outcome of re-checking a creator's stored categories.
type CreatorReview struct {
	Creator    *models.Creator `json:"creator"`
	Previous   []string        `json:"previous"`
	Categories []string        `json:"categories"`
	Changed    bool            `json:"changed"`
}

type CategorizationService struct {
	scorer   *categorizer.Scorer
	creators store.CreatorStore
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewCategorizationService wires the scorer to the creator store. m may be nil.
func NewCategorizationService(scorer *categorizer.Scorer, creators store.CreatorStore, m *metrics.Metrics) *CategorizationService {
	return &CategorizationService{
		scorer:   scorer,
		creators: creators,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Catalog returns the catalog the service scores against.
func (s *CategorizationService) Catalog() *categorizer.Catalog {
	return s.scorer.Catalog()
}

// CategorizeProfile scores a profile that is not stored anywhere.
func (s *CategorizationService) CategorizeProfile(ctx context.Context, p categorizer.Profile) (categorizer.CategorizationResult, error) {
	start := time.Now()
	res, err := s.scorer.Categorize(ctx, p)
	if err != nil {
		s.metrics.ObserveError()
		return categorizer.CategorizationResult{}, err
	}
	s.metrics.ObserveCategorization(res.Categories, time.Since(start))
	return res, nil
}

// CategorizeCreator scores a stored creator. When apply is true the new
// categories are written back, even if unchanged, so categorized_at records
// the run.
func (s *CategorizationService) CategorizeCreator(ctx context.Context, id uuid.UUID, apply bool) (*CreatorCategorization, error) {
	creator, err := s.creators.GetCreator(ctx, id)
	if err != nil {
		s.metrics.ObserveError()
		return nil, fmt.Errorf("get creator %s: %w", id, err)
	}

	res, err := s.CategorizeProfile(ctx, creator.Profile())
	if err != nil {
		return nil, fmt.Errorf("categorize creator %s: %w", id, err)
	}

	out := &CreatorCategorization{
		Creator:    creator,
		Previous:   creator.Categories,
		Categories: res.Categories,
		Matches:    res.Matches,
		Changed:    !equalStrings(creator.Categories, res.Categories),
	}
	if !apply {
		return out, nil
	}

	at := s.now()
	if err := s.creators.UpdateCreatorCategories(ctx, id, res.Categories, at); err != nil {
		return nil, fmt.Errorf("save categories for creator %s: %w", id, err)
	}
	creator.Categories = res.Categories
	creator.CategorizedAt = &at
	out.Applied = true

	log.WithFields(log.Fields{
		"creator_id": id,
		"handle":     creator.Handle,
		"categories": res.Categories,
		"changed":    out.Changed,
	}).Info("creator categorized")
	return out, nil
}

// ReviewCreator re-checks a creator's stored categories against the current
// catalog and saves the result when it changed.
func (s *CategorizationService) ReviewCreator(ctx context.Context, id uuid.UUID) (*CreatorReview, error) {
	creator, err := s.creators.GetCreator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get creator %s: %w", id, err)
	}

	categories, changed := s.scorer.Review(creator.Categories, creator.Profile())
	s.metrics.ObserveReview(changed)

	out := &CreatorReview{
		Creator:    creator,
		Previous:   creator.Categories,
		Categories: categories,
		Changed:    changed,
	}
	if !changed {
		return out, nil
	}

	at := s.now()
	if err := s.creators.UpdateCreatorCategories(ctx, id, categories, at); err != nil {
		return nil, fmt.Errorf("save reviewed categories for creator %s: %w", id, err)
	}
	creator.Categories = categories
	creator.CategorizedAt = &at

	log.WithFields(log.Fields{
		"creator_id": id,
		"previous":   out.Previous,
		"categories": categories,
	}).Info("creator categories reviewed")
	return out, nil
}

// BatchCategorize categorizes each creator in ids. Creators that no longer
// exist are skipped; any other failure stops the batch.
func (s *CategorizationService) BatchCategorize(ctx context.Context, ids []uuid.UUID, apply bool) (map[uuid.UUID]*CreatorCategorization, error) {
	results := make(map[uuid.UUID]*CreatorCategorization, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.CategorizeCreator(ctx, id, apply)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warnf("Creator %s not found during batch categorization, skipping", id)
				continue
			}
			return results, err
		}
		results[id] = res
	}
	return results, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
