package categorizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

var (
	ErrEmptyCatalog      = errors.New("catalog has no categories")
	ErrEmptyCategoryName = errors.New("category name is empty")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrMalformedCatalog  = errors.New("malformed catalog")
)

// CategoryDefinition is one catalog entry: a display name and the keywords
// that signal it.
type CategoryDefinition struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Slug returns the URL-safe form of the category name.
func (d CategoryDefinition) Slug() string {
	return slug.Make(d.Category)
}

// Catalog is an immutable, ordered set of category definitions.
// It is safe for concurrent use.
type Catalog struct {
	defs   []CategoryDefinition
	byName map[string]int
	bySlug map[string]int
}

// NewCatalog validates defs and copies them into a Catalog. Names are unique
// case-insensitively; keywords are trimmed and empty ones dropped.
func NewCatalog(defs []CategoryDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		defs:   make([]CategoryDefinition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
		bySlug: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		name := strings.TrimSpace(d.Category)
		if name == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyCategoryName)
		}
		key := strings.ToLower(name)
		if _, exists := c.byName[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}

		keywords := make([]string, 0, len(d.Keywords))
		for _, kw := range d.Keywords {
			kw = strings.TrimSpace(kw)
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}

		def := CategoryDefinition{Category: name, Keywords: keywords}
		c.byName[key] = len(c.defs)
		if s := def.Slug(); s != "" {
			if _, taken := c.bySlug[s]; !taken {
				c.bySlug[s] = len(c.defs)
			}
		}
		c.defs = append(c.defs, def)
	}
	return c, nil
}

// ParseCatalog decodes a JSON array of {"category", "keywords"} objects.
func ParseCatalog(data []byte) (*Catalog, error) {
	var defs []CategoryDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return NewCatalog(defs)
}

// Definitions returns a copy of the catalog entries in catalog order.
func (c *Catalog) Definitions() []CategoryDefinition {
	out := make([]CategoryDefinition, len(c.defs))
	for i, d := range c.defs {
		out[i] = CategoryDefinition{
			Category: d.Category,
			Keywords: append([]string(nil), d.Keywords...),
		}
	}
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Category
	}
	return names
}

// Lookup finds a category by name, ignoring case.
func (c *Catalog) Lookup(name string) (CategoryDefinition, bool) {
	idx, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CategoryDefinition{}, false
	}
	return c.defs[idx], true
}

// LookupSlug finds a category by its slug. When two names share a slug the
// first one listed wins.
func (c *Catalog) LookupSlug(s string) (CategoryDefinition, bool) {
	idx, ok := c.bySlug[s]
	if !ok {
		return CategoryDefinition{}, false
	}
	return c.defs[idx], true
}
