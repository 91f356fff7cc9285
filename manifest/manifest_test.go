package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecteru2/preload/preload"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "batch.yaml", `
options:
  base_url: https://cdn.example.com/img
  finished: not-a-callback
images:
  - logo.png
  - [a.png, b.png]
  - 17
  - {nested: map}
`)
	m, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img", m.Options.BaseURL)
	assert.Nil(t, m.Options.Finished)
	assert.Equal(t, []string{"logo.png", "a.png", "b.png"},
		preload.Resolve(context.Background(), m.References...))
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "batch.json", `{"images": ["x.png", ["y.png", "z.png"]]}`)
	m, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, m.Options.BaseURL)
	assert.Equal(t, []string{"x.png", "y.png", "z.png"},
		preload.Resolve(context.Background(), m.References...))
}

func TestLoadSingleImage(t *testing.T) {
	path := writeFile(t, "batch.toml", `
images = "only.png"

[options]
base_url = 42
`)
	m, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, m.Options.BaseURL)
	assert.Equal(t, []string{"only.png"}, preload.Resolve(context.Background(), m.References...))
}

func TestLoadInvalidPath(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
		},
		{
			name: "empty",
			path: func(t *testing.T) string { return writeFile(t, "empty.yaml", "") },
		},
		{
			name: "directory",
			path: func(t *testing.T) string { return t.TempDir() },
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(context.Background(), tc.path(t))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}
