package clix

import (
	"math"
	"strconv"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("limit", 0, "")
	flags.Int("offset", 0, "")
	require.NoError(t, flags.Parse([]string{"--limit", "-5", "--offset", "-1"}))

	p, err := ParsePagination(flags)
	require.NoError(t, err)
	assert.Equal(t, PaginationParams{Limit: 20, Offset: 0}, p)
}

func TestParseHashtagList(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]int
		wantErr  bool
	}{
		{name: "empty", input: "", expected: map[string]int{}},
		{name: "counts", input: "rpg=4, fps=1", expected: map[string]int{"rpg": 4, "fps": 1}},
		{name: "bare tag counts once", input: "#cooking", expected: map[string]int{"#cooking": 1}},
		{name: "repeated tags sum", input: "rpg=2,rpg=3,", expected: map[string]int{"rpg": 5}},
		{name: "repeated huge counts saturate", input: "rpg=" + strconv.Itoa(math.MaxInt) + ",rpg=7", expected: map[string]int{"rpg": math.MaxInt}},
		{name: "negative count", input: "rpg=-1", wantErr: true},
		{name: "not a number", input: "rpg=lots", wantErr: true},
		{name: "missing tag", input: "=3", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseHashtagList(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseHashtagCountsAndOptionalString(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("hashtags", "", "")
	flags.String("bio", "", "")
	require.NoError(t, flags.Parse([]string{"--hashtags", "rpg=2"}))

	counts, err := ParseHashtagCounts(flags)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rpg": 2}, counts)

	assert.Nil(t, OptionalString(flags, "bio"))
	require.NoError(t, flags.Set("bio", ""))
	bio := OptionalString(flags, "bio")
	require.NotNil(t, bio)
	assert.Equal(t, "", *bio)
}
