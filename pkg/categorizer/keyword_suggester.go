package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// DefaultSuggestPrompt is used when no prompt template is configured.
const DefaultSuggestPrompt = `You maintain the topic catalog of a creator marketplace.
Category: {{CATEGORY}}
Existing keywords: {{KEYWORDS}}
Sample creator bios:
{{BIOS}}

Suggest up to {{MAX}} additional single-word keywords (lowercase letters and digits only)
that creators in this category use in their bios or hashtags.
Answer with JSON only: {"keywords": ["..."]}`

const defaultMaxSuggestions = 10

// KeywordSuggestionRequest describes a category to find new keywords for.
type KeywordSuggestionRequest struct {
	Category         string
	ExistingKeywords []string
	SampleBios       []string
	MaxKeywords      int
}

// KeywordSuggestion holds usable keywords and the ones dropped because the
// word matcher could never match them.
type KeywordSuggestion struct {
	Keywords []string
	Rejected []string
}

// KeywordSuggester proposes new catalog keywords. Suggestions are never
// applied to the catalog automatically.
type KeywordSuggester interface {
	SuggestKeywords(ctx context.Context, req KeywordSuggestionRequest) (KeywordSuggestion, error)
}

type chatCompletionCreator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMKeywordSuggester implements KeywordSuggester
// on top of an OpenAI-compatible chat completion API.
type LLMKeywordSuggester struct {
	client         chatCompletionCreator
	model          string
	promptTemplate string
}

// NewLLMKeywordSuggester creates a suggester. An empty prompt selects DefaultSuggestPrompt.
func NewLLMKeywordSuggester(client chatCompletionCreator, model, prompt string) *LLMKeywordSuggester {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultSuggestPrompt
	}
	return &LLMKeywordSuggester{
		client:         client,
		model:          model,
		promptTemplate: prompt,
	}
}

func (s *LLMKeywordSuggester) SuggestKeywords(ctx context.Context, req KeywordSuggestionRequest) (KeywordSuggestion, error) {
	if s.client == nil {
		return KeywordSuggestion{}, fmt.Errorf("keyword suggester is not initialized with an OpenAI client")
	}
	limit := req.MaxKeywords
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}

	prompt := s.promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{CATEGORY}}", req.Category)
	prompt = strings.ReplaceAll(prompt, "{{KEYWORDS}}", strings.Join(req.ExistingKeywords, ", "))
	prompt = strings.ReplaceAll(prompt, "{{BIOS}}", strings.Join(req.SampleBios, "\n"))
	prompt = strings.ReplaceAll(prompt, "{{MAX}}", strconv.Itoa(limit))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return KeywordSuggestion{}, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return KeywordSuggestion{}, fmt.Errorf("no choices returned from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return KeywordSuggestion{}, fmt.Errorf("failed to parse LLM response as JSON: %w\nResponse content: %s", err, content)
	}

	log.WithFields(log.Fields{
		"category":      req.Category,
		"model":         s.model,
		"input_tokens":  resp.Usage.PromptTokens,
		"output_tokens": resp.Usage.CompletionTokens,
		"suggested":     len(parsed.Keywords),
	}).Debug("keyword suggestions received")

	return filterSuggestions(parsed.Keywords, req.ExistingKeywords, limit), nil
}

// filterSuggestions keeps keywords that normalize to a single matchable
// token and are not already known, preserving the model's order.
func filterSuggestions(candidates, existing []string, limit int) KeywordSuggestion {
	known := make(map[string]struct{}, len(existing)+len(candidates))
	for _, kw := range existing {
		known[Normalize(strings.TrimSpace(kw))] = struct{}{}
	}

	var out KeywordSuggestion
	for _, raw := range candidates {
		kw := Normalize(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#")))
		if kw == "" {
			continue
		}
		if tokens := Tokenize(kw); len(tokens) != 1 || tokens[0] != kw {
			out.Rejected = append(out.Rejected, raw)
			continue
		}
		if _, dup := known[kw]; dup {
			continue
		}
		known[kw] = struct{}{}
		if len(out.Keywords) < limit {
			out.Keywords = append(out.Keywords, kw)
		}
	}
	return out
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var _ KeywordSuggester = (*LLMKeywordSuggester)(nil)
