package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	data := []byte(`[
		{"category": " RPG ", "keywords": ["rpg", " dragon ", ""]},
		{"category": "Tabletop Games", "keywords": ["dnd", "boardgames"]}
	]`)

	catalog, err := ParseCatalog(data)

	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, []string{"RPG", "Tabletop Games"}, catalog.Names())
	assert.Equal(t, []CategoryDefinition{
		{Category: "RPG", Keywords: []string{"rpg", "dragon"}},
		{Category: "Tabletop Games", Keywords: []string{"dnd", "boardgames"}},
	}, catalog.Definitions())
}

func TestParseCatalog_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		data        string
		expectedErr error
	}{
		{name: "not json", data: `categories: rpg`, expectedErr: ErrMalformedCatalog},
		{name: "wrong shape", data: `{"category": "RPG"}`, expectedErr: ErrMalformedCatalog},
		{name: "empty list", data: `[]`, expectedErr: ErrEmptyCatalog},
		{name: "null", data: `null`, expectedErr: ErrEmptyCatalog},
		{name: "blank name", data: `[{"category": "  ", "keywords": ["x"]}]`, expectedErr: ErrEmptyCategoryName},
		{name: "duplicate ignoring case", data: `[{"category": "RPG"}, {"category": "rpg"}]`, expectedErr: ErrDuplicateCategory},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalog, err := ParseCatalog([]byte(tc.data))
			assert.Nil(t, catalog)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	catalog, err := NewCatalog([]CategoryDefinition{
		{Category: "RPG", Keywords: []string{"rpg"}},
		{Category: "Tabletop Games", Keywords: []string{"dnd"}},
	})
	require.NoError(t, err)

	def, ok := catalog.Lookup("  rpg ")
	require.True(t, ok)
	assert.Equal(t, "RPG", def.Category)

	def, ok = catalog.LookupSlug("tabletop-games")
	require.True(t, ok)
	assert.Equal(t, "Tabletop Games", def.Category)
	assert.Equal(t, "tabletop-games", def.Slug())

	_, ok = catalog.Lookup("Cooking")
	assert.False(t, ok)
	_, ok = catalog.LookupSlug("cooking")
	assert.False(t, ok)
}

func TestCatalog_SlugCollisionFirstWins(t *testing.T) {
	catalog, err := NewCatalog([]CategoryDefinition{
		{Category: "Tabletop Games"},
		{Category: "Tabletop-Games"},
	})
	require.NoError(t, err)

	def, ok := catalog.LookupSlug("tabletop-games")
	require.True(t, ok)
	assert.Equal(t, "Tabletop Games", def.Category)
}

func TestCatalog_DefinitionsAreCopies(t *testing.T) {
	catalog, err := NewCatalog([]CategoryDefinition{{Category: "RPG", Keywords: []string{"rpg"}}})
	require.NoError(t, err)

	defs := catalog.Definitions()
	defs[0].Keywords[0] = "changed"
	defs[0].Category = "changed"

	assert.Equal(t, []CategoryDefinition{{Category: "RPG", Keywords: []string{"rpg"}}}, catalog.Definitions())
}
