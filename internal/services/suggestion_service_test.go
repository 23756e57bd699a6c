package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"niche/internal/models"
	"niche/internal/store"
	"niche/pkg/categorizer"
)

func suggestionCatalog(t *testing.T) *categorizer.Catalog {
	t.Helper()
	catalog, err := categorizer.NewCatalog([]categorizer.CategoryDefinition{
		{Category: "Cooking", Keywords: []string{"recipe", "kitchen"}},
	})
	require.NoError(t, err)
	return catalog
}

func TestSuggestionService_Disabled(t *testing.T) {
	svc := NewSuggestionService(nil, suggestionCatalog(t), nil, 0)

	assert.False(t, svc.Enabled())
	_, err := svc.SuggestKeywords(context.Background(), "Cooking", nil)
	assert.ErrorIs(t, err, models.ErrFeatureDisabled)
}

func TestSuggestionService_UnknownCategory(t *testing.T) {
	svc := NewSuggestionService(new(mockSuggester), suggestionCatalog(t), nil, 0)

	_, err := svc.SuggestKeywords(context.Background(), "Knitting", []string{"yarn"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSuggestionService_ExplicitBios(t *testing.T) {
	ms := new(mockSuggester)
	svc := NewSuggestionService(ms, suggestionCatalog(t), new(mockCreatorStore), 5)
	want := categorizer.KeywordSuggestion{Keywords: []string{"baking"}}

	ms.On("SuggestKeywords", mock.Anything, categorizer.KeywordSuggestionRequest{
		Category:         "Cooking",
		ExistingKeywords: []string{"recipe", "kitchen"},
		SampleBios:       []string{"I bake bread"},
		MaxKeywords:      5,
	}).Return(want, nil).Once()

	got, err := svc.SuggestKeywords(context.Background(), "cooking", []string{"I bake bread"})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	ms.AssertExpectations(t)
}

func TestSuggestionService_SamplesStoredBios(t *testing.T) {
	ms := new(mockSuggester)
	cs := new(mockCreatorStore)
	svc := NewSuggestionService(ms, suggestionCatalog(t), cs, 0)

	cs.On("ListCreators", mock.Anything, sampleScanCreators, 0).Return([]*models.Creator{
		{Handle: "chef", Bio: strPtr("Pasta every day"), Categories: []string{"Cooking"}},
		{Handle: "gamer", Bio: strPtr("Speedruns"), Categories: []string{"RPG"}},
		{Handle: "quiet", Categories: []string{"Cooking"}},
	}, nil).Once()
	ms.On("SuggestKeywords", mock.Anything, mock.MatchedBy(func(req categorizer.KeywordSuggestionRequest) bool {
		return len(req.SampleBios) == 1 && req.SampleBios[0] == "Pasta every day" && req.MaxKeywords == defaultSuggestLimit
	})).Return(categorizer.KeywordSuggestion{Keywords: []string{"pasta"}}, nil).Once()

	got, err := svc.SuggestKeywords(context.Background(), "Cooking", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"pasta"}, got.Keywords)
	ms.AssertExpectations(t)
	cs.AssertExpectations(t)
}
