package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock OpenAI Client ---
type mockOpenAIClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastRequest  openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

// --- End Mock OpenAI Client ---

func responseWithContent(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestLLMKeywordSuggester_SuggestKeywords_Parsing(t *testing.T) {
	mockClient := &mockOpenAIClient{
		mockResponse: responseWithContent(`{"keywords": ["Dragon", "dungeon", "#Quest"]}`),
	}
	suggester := NewLLMKeywordSuggester(mockClient, "gpt-test", "cat={{CATEGORY}} kw={{KEYWORDS}} bios={{BIOS}} max={{MAX}}")

	result, err := suggester.SuggestKeywords(context.Background(), KeywordSuggestionRequest{
		Category:         "RPG",
		ExistingKeywords: []string{"rpg", "dragon"},
		SampleBios:       []string{"I love dragon quests"},
		MaxKeywords:      5,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"dungeon", "quest"}, result.Keywords, "existing keywords should be dropped and the rest normalized")
	assert.Empty(t, result.Rejected)

	require.Len(t, mockClient.lastRequest.Messages, 1)
	assert.Equal(t, "gpt-test", mockClient.lastRequest.Model)
	assert.Equal(t, "cat=RPG kw=rpg, dragon bios=I love dragon quests max=5", mockClient.lastRequest.Messages[0].Content)
}

func TestLLMKeywordSuggester_SuggestKeywords_CodeFence(t *testing.T) {
	mockClient := &mockOpenAIClient{
		mockResponse: responseWithContent("```json\n{\"keywords\": [\"fps\"]}\n```"),
	}
	suggester := NewLLMKeywordSuggester(mockClient, "gpt-test", "")

	result, err := suggester.SuggestKeywords(context.Background(), KeywordSuggestionRequest{Category: "Shooter"})

	require.NoError(t, err)
	assert.Equal(t, []string{"fps"}, result.Keywords)
	assert.Contains(t, mockClient.lastRequest.Messages[0].Content, "Category: Shooter", "empty prompt should fall back to the default template")
}

func TestLLMKeywordSuggester_SuggestKeywords_InvalidJSON(t *testing.T) {
	invalidJSON := `This is just plain text, not JSON.`
	mockClient := &mockOpenAIClient{mockResponse: responseWithContent(invalidJSON)}
	suggester := NewLLMKeywordSuggester(mockClient, "gpt-test", "dummy prompt")

	_, err := suggester.SuggestKeywords(context.Background(), KeywordSuggestionRequest{Category: "RPG"})

	require.Error(t, err, "SuggestKeywords should return an error for invalid JSON")
	assert.Contains(t, err.Error(), "failed to parse LLM response as JSON")
	assert.Contains(t, err.Error(), invalidJSON, "Error message should include the raw invalid content")
}

func TestLLMKeywordSuggester_SuggestKeywords_APIError(t *testing.T) {
	apiErr := errors.New("simulated API error")
	mockClient := &mockOpenAIClient{mockError: apiErr}
	suggester := NewLLMKeywordSuggester(mockClient, "gpt-test", "dummy prompt")

	_, err := suggester.SuggestKeywords(context.Background(), KeywordSuggestionRequest{Category: "RPG"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apiErr, "Returned error should wrap the original API error")
	assert.Contains(t, err.Error(), "openai chat completion failed")
}

func TestLLMKeywordSuggester_SuggestKeywords_NoChoices(t *testing.T) {
	mockClient := &mockOpenAIClient{mockResponse: openai.ChatCompletionResponse{}}
	suggester := NewLLMKeywordSuggester(mockClient, "gpt-test", "dummy prompt")

	_, err := suggester.SuggestKeywords(context.Background(), KeywordSuggestionRequest{Category: "RPG"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices returned from OpenAI")
}

func TestLLMKeywordSuggester_SuggestKeywords_NilClient(t *testing.T) {
	suggester := NewLLMKeywordSuggester(nil, "gpt-test", "")

	_, err := suggester.SuggestKeywords(context.Background(), KeywordSuggestionRequest{Category: "RPG"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestFilterSuggestions(t *testing.T) {
	testCases := []struct {
		name             string
		candidates       []string
		existing         []string
		limit            int
		expectedKeywords []string
		expectedRejected []string
	}{
		{
			name:             "Normalizes accents and case",
			candidates:       []string{"Crème", "BRÛLÉE"},
			limit:            10,
			expectedKeywords: []string{"creme", "brulee"},
		},
		{
			name:             "Rejects phrases and punctuation",
			candidates:       []string{"rock music", "e-sports", "lofi"},
			limit:            10,
			expectedKeywords: []string{"lofi"},
			expectedRejected: []string{"rock music", "e-sports"},
		},
		{
			name:             "Drops duplicates of existing and of each other",
			candidates:       []string{"RPG", "jrpg", "JRPG"},
			existing:         []string{"rpg"},
			limit:            10,
			expectedKeywords: []string{"jrpg"},
		},
		{
			name:             "Caps at limit",
			candidates:       []string{"a", "b", "c"},
			limit:            2,
			expectedKeywords: []string{"a", "b"},
		},
		{
			name:       "Skips blanks",
			candidates: []string{"", "  ", "#"},
			limit:      10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := filterSuggestions(tc.candidates, tc.existing, tc.limit)
			assert.Equal(t, tc.expectedKeywords, got.Keywords)
			assert.Equal(t, tc.expectedRejected, got.Rejected)
		})
	}
}
