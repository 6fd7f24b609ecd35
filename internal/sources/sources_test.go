package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	srcs := Default()
	require.NotEmpty(t, srcs)

	seen := make(map[string]bool)
	for _, src := range srcs {
		assert.NotEmpty(t, src.Jurisdiction)
		assert.NotEmpty(t, src.Agency)
		assert.NotEmpty(t, src.URL)
		assert.False(t, seen[src.URL], "duplicate source URL %s", src.URL)
		seen[src.URL] = true
	}
}

func TestLoadFile_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{
			"jurisdiction": "Kenya",
			"agency": "KRA",
			"url": "https://kra.go.ke/news",
			"keywords": ["paye", "nssf"]
		},
		{
			"jurisdiction": "India",
			"agency": "EPFO",
			"url": "https://epfindia.gov.in/circulars",
			"use_browser": true
		}
	]`), 0o644))

	srcs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, srcs, 2)
	assert.Equal(t, "Kenya", srcs[0].Jurisdiction)
	assert.Equal(t, []string{"paye", "nssf"}, srcs[0].Keywords)
	assert.True(t, srcs[1].UseBrowser)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"empty list", "[]"},
		{"missing jurisdiction", `[{"agency": "KRA", "url": "https://kra.go.ke"}]`},
		{"bad url", `[{"jurisdiction": "Kenya", "agency": "KRA", "url": "not-a-url"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	srcs, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), srcs)
}
