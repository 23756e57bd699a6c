package catalogsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niche/pkg/categorizer"
)

const sampleCatalog = `[{"category": "RPG", "keywords": ["rpg", "dragon"]}, {"category": "Shooter", "keywords": ["fps"]}]`

func writeTempCatalog(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeTempCatalog(t, append([]byte{0xEF, 0xBB, 0xBF}, sampleCatalog...))

	catalog, err := New().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"RPG", "Shooter"}, catalog.Names())
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categories.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	loader := NewWithClient(srv.Client())

	catalog, err := loader.Load(context.Background(), srv.URL+"/categories.json")
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	_, err = loader.Load(context.Background(), srv.URL+"/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 404")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		location    func(t *testing.T) string
		expectedErr error
		contains    string
	}{
		{
			name:     "empty location",
			location: func(t *testing.T) string { return "" },
			contains: "empty",
		},
		{
			name:     "missing file",
			location: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			contains: "failed to stat catalog",
		},
		{
			name:     "directory",
			location: func(t *testing.T) string { return t.TempDir() },
			contains: "is a directory",
		},
		{
			name:        "malformed",
			location:    func(t *testing.T) string { return writeTempCatalog(t, []byte(`{"category":`)) },
			expectedErr: categorizer.ErrMalformedCatalog,
		},
		{
			name:        "empty catalog",
			location:    func(t *testing.T) string { return writeTempCatalog(t, []byte(`[]`)) },
			expectedErr: categorizer.ErrEmptyCatalog,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Load(context.Background(), tc.location(t))
			require.Error(t, err)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, []byte(`[]`), Clean([]byte("\xEF\xBB\xBF[]"), "test"))
	assert.Equal(t, []byte("a�b"), Clean([]byte("a\xffb"), "test"))
}
