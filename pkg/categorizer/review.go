package categorizer

import "strings"

// Review re-checks a creator's existing categories against the scorer's
// catalog. Categories that still exist are kept in their original order,
// spelled as the catalog spells them. If none survive, the profile is scored
// again and the fresh selection is returned. changed reports whether the
// result differs from existing.
func (s *Scorer) Review(existing []string, p Profile) (categories []string, changed bool) {
	kept := make([]string, 0, len(existing))
	seen := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		def, ok := s.catalog.Lookup(name)
		if !ok {
			continue
		}
		key := strings.ToLower(def.Category)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, def.Category)
	}

	if len(kept) == 0 {
		kept = s.Select(s.Score(p))
	}
	return kept, !sameCategories(existing, kept)
}

func sameCategories(a, b []string) bool {
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
