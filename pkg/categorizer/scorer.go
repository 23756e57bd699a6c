package categorizer

import (
	"context"
	"math"
	"sort"
	"strings"
)

// MaxCategories caps how many categories a creator can be given.
const MaxCategories = 2

const (
	DefaultBioWeight       = 2
	DefaultRunnerUpRatio   = 10.0
	DefaultThirdPlaceRatio = 15.0
)

// CategoryMatch is the accumulated signal for one category.
type CategoryMatch struct {
	Category  string `json:"category"`
	Instances int    `json:"instances"`
}

// Scorer scores profiles against a catalog and picks the best categories.
// A Scorer is immutable and safe for concurrent use.
type Scorer struct {
	catalog         *Catalog
	matcher         *Matcher
	bioWeight       int
	runnerUpRatio   float64
	thirdPlaceRatio float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithBioWeight sets how much a keyword found in the bio adds.
func WithBioWeight(w int) Option {
	return func(s *Scorer) {
		if w >= 0 {
			s.bioWeight = w
		}
	}
}

// WithRunnerUpRatio sets how many times the runner-up score the leader must
// exceed to be returned alone.
func WithRunnerUpRatio(r float64) Option {
	return func(s *Scorer) {
		if r > 0 {
			s.runnerUpRatio = r
		}
	}
}

// WithThirdPlaceRatio sets the leader/third-place ratio above which only the
// top two are returned.
func WithThirdPlaceRatio(r float64) Option {
	return func(s *Scorer) {
		if r > 0 {
			s.thirdPlaceRatio = r
		}
	}
}

// WithMatcher replaces the word matcher, e.g. to plug in a newer emoji table.
func WithMatcher(m *Matcher) Option {
	return func(s *Scorer) {
		if m != nil {
			s.matcher = m
		}
	}
}

// NewScorer builds a Scorer over catalog.
func NewScorer(catalog *Catalog, opts ...Option) *Scorer {
	s := &Scorer{
		catalog:         catalog,
		matcher:         defaultMatcher,
		bioWeight:       DefaultBioWeight,
		runnerUpRatio:   DefaultRunnerUpRatio,
		thirdPlaceRatio: DefaultThirdPlaceRatio,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the scorer was built with.
func (s *Scorer) Catalog() *Catalog {
	return s.catalog
}

// Score returns one CategoryMatch per catalog entry, in catalog order.
func (s *Scorer) Score(p Profile) []CategoryMatch {
	return scoreDefinitions(s.catalog.defs, p, s.matcher, s.bioWeight)
}

// Select picks at most MaxCategories names from matches. See SelectTopCategories.
func (s *Scorer) Select(matches []CategoryMatch) []string {
	return selectTop(matches, s.runnerUpRatio, s.thirdPlaceRatio)
}

// Categorize implements ProfileCategorizer.
func (s *Scorer) Categorize(ctx context.Context, p Profile) (CategorizationResult, error) {
	if err := ctx.Err(); err != nil {
		return CategorizationResult{}, err
	}
	matches := s.Score(p)
	return CategorizationResult{
		Categories: s.Select(matches),
		Matches:    matches,
	}, nil
}

var _ ProfileCategorizer = (*Scorer)(nil)

// ScoreCategories scores a profile against defs with the default bio weight.
// Each hashtag whose key equals a keyword (ignoring case) adds its count;
// each keyword found in the bio as a whole word adds DefaultBioWeight.
func ScoreCategories(defs []CategoryDefinition, hashtagCounts map[string]int, bio *string) []CategoryMatch {
	return scoreDefinitions(defs, Profile{Bio: bio, HashtagCounts: hashtagCounts}, defaultMatcher, DefaultBioWeight)
}

// SelectTopCategories drops empty matches, ranks the rest by instances
// (stable, first-listed wins ties) and returns at most MaxCategories names.
// A leader more than 10x the runner-up is returned alone.
func SelectTopCategories(matches []CategoryMatch) []string {
	return selectTop(matches, DefaultRunnerUpRatio, DefaultThirdPlaceRatio)
}

func scoreDefinitions(defs []CategoryDefinition, p Profile, m *Matcher, bioWeight int) []CategoryMatch {
	var tags map[string]int
	if p.HashtagCounts != nil {
		tags = foldHashtags(p.HashtagCounts)
	}

	matches := make([]CategoryMatch, 0, len(defs))
	for _, def := range defs {
		instances := 0
		for _, kw := range def.Keywords {
			if kw == "" {
				continue
			}
			if tags != nil {
				if n, ok := tags[strings.ToLower(kw)]; ok {
					instances = addCounts(instances, n)
				}
			}
			if p.Bio != nil && m.ContainsWord(*p.Bio, kw) {
				instances = addCounts(instances, bioWeight)
			}
		}
		matches = append(matches, CategoryMatch{Category: def.Category, Instances: instances})
	}
	return matches
}

// addCounts adds two non-negative counts, saturating at math.MaxInt.
func addCounts(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// foldHashtags lower-cases hashtag keys. When several keys fold together the
// already lower-case key wins, otherwise the lexically smallest one. Negative
// counts are dropped.
func foldHashtags(counts map[string]int) map[string]int {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]int, len(keys))
	for _, k := range keys {
		n := counts[k]
		if n < 0 {
			continue
		}
		lk := strings.ToLower(k)
		if _, seen := folded[lk]; seen && k != lk {
			continue
		}
		folded[lk] = n
	}
	return folded
}

func selectTop(matches []CategoryMatch, runnerUpRatio, thirdPlaceRatio float64) []string {
	ranked := make([]CategoryMatch, 0, len(matches))
	for _, m := range matches {
		if m.Instances > 0 {
			ranked = append(ranked, m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Instances > ranked[j].Instances
	})

	top := ranked
	if len(top) > MaxCategories {
		top = top[:MaxCategories]
	}

	switch {
	case len(ranked) >= 2 && exceeds(ranked[0], ranked[1], runnerUpRatio):
		top = top[:1]
	case len(ranked) >= 3 && exceeds(ranked[0], ranked[2], thirdPlaceRatio):
		top = top[:2]
	}

	names := make([]string, len(top))
	for i, m := range top {
		names[i] = m.Category
	}
	return names
}

func exceeds(leader, other CategoryMatch, ratio float64) bool {
	return float64(leader.Instances) > float64(other.Instances)*ratio
}
