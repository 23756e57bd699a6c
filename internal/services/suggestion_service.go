package services

import (
	"context"
	"fmt"
	"strings"

	"niche/internal/models"
	"niche/internal/store"
	"niche/pkg/categorizer"
)

const (
	maxSampleBios       = 20
	sampleScanCreators  = 500
	defaultSuggestLimit = 10
)

// SuggestionService asks a language model for new catalog keywords. It never
// changes the catalog; suggestions are for a human to review.
type SuggestionService struct {
	suggester   categorizer.KeywordSuggester
	catalog     *categorizer.Catalog
	creators    store.CreatorStore
	maxKeywords int
}

// NewSuggestionService creates the service. A nil suggester disables it.
func NewSuggestionService(s categorizer.KeywordSuggester, catalog *categorizer.Catalog, creators store.CreatorStore, maxKeywords int) *SuggestionService {
	if maxKeywords <= 0 {
		maxKeywords = defaultSuggestLimit
	}
	return &SuggestionService{suggester: s, catalog: catalog, creators: creators, maxKeywords: maxKeywords}
}

// Enabled reports whether a suggester is configured.
func (s *SuggestionService) Enabled() bool {
	return s != nil && s.suggester != nil
}

// SuggestKeywords proposes keywords for the named category. When sampleBios
// is empty, bios of stored creators already in the category are used.
func (s *SuggestionService) SuggestKeywords(ctx context.Context, category string, sampleBios []string) (categorizer.KeywordSuggestion, error) {
	if !s.Enabled() {
		return categorizer.KeywordSuggestion{}, fmt.Errorf("%w: keyword suggestions are not configured", models.ErrFeatureDisabled)
	}
	def, ok := s.catalog.Lookup(category)
	if !ok {
		return categorizer.KeywordSuggestion{}, fmt.Errorf("category %q: %w", category, store.ErrNotFound)
	}

	if len(sampleBios) == 0 && s.creators != nil {
		bios, err := s.sampleBios(ctx, def.Category)
		if err != nil {
			return categorizer.KeywordSuggestion{}, err
		}
		sampleBios = bios
	}

	return s.suggester.SuggestKeywords(ctx, categorizer.KeywordSuggestionRequest{
		Category:         def.Category,
		ExistingKeywords: def.Keywords,
		SampleBios:       sampleBios,
		MaxKeywords:      s.maxKeywords,
	})
}

func (s *SuggestionService) sampleBios(ctx context.Context, category string) ([]string, error) {
	creators, err := s.creators.ListCreators(ctx, sampleScanCreators, 0)
	if err != nil {
		return nil, fmt.Errorf("list creators for sample bios: %w", err)
	}
	var bios []string
	for _, c := range creators {
		if c.Bio == nil || !hasCategory(c.Categories, category) {
			continue
		}
		bios = append(bios, *c.Bio)
		if len(bios) == maxSampleBios {
			break
		}
	}
	return bios, nil
}

func hasCategory(categories []string, name string) bool {
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
