package categorizer

import "context"

// Profile is the part of a creator record the categorizer reads.
// A nil Bio or nil HashtagCounts contributes nothing.
type Profile struct {
	Bio           *string
	HashtagCounts map[string]int
}

// CategorizationResult holds the selected categories and the per-category
// scores they were picked from.
type CategorizationResult struct {
	Categories []string        `json:"categories"`
	Matches    []CategoryMatch `json:"matches"`
}

// ProfileCategorizer categorizes creator profiles
type ProfileCategorizer interface {
	Categorize(ctx context.Context, profile Profile) (CategorizationResult, error)
}
