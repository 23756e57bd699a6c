package clix

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

func ParsePagination(flags *pflag.FlagSet) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}

// ParseHashtagCounts reads the "hashtags" flag, a comma separated list of
// tag=count pairs such as "rpg=4,#fps=1". A tag without a count counts once.
// Repeated tags are summed, saturating at math.MaxInt.
func ParseHashtagCounts(flags *pflag.FlagSet) (map[string]int, error) {
	raw, _ := flags.GetString("hashtags")
	return ParseHashtagList(raw)
}

// ParseHashtagList parses the tag=count syntax of ParseHashtagCounts.
func ParseHashtagList(raw string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, countStr, hasCount := strings.Cut(part, "=")
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, fmt.Errorf("hashtag entry %q has no tag", part)
		}
		n := 1
		if hasCount {
			var err error
			n, err = strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("hashtag %q: count must be a non-negative integer, got %q", tag, countStr)
			}
		}
		if counts[tag] > math.MaxInt-n {
			counts[tag] = math.MaxInt
		} else {
			counts[tag] += n
		}
	}
	return counts, nil
}

// OptionalString returns the flag value, or nil when the flag was not set
// on the command line.
func OptionalString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}
