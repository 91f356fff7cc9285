package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, AtomicWriteJSON(path, map[string]int{"loaded": 3}))
	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	assert.JSONEq(t, `{"loaded": 3}`, string(data))
	assert.True(t, ValidFile(path))

	// Overwrite leaves no temp files behind.
	require.NoError(t, AtomicWriteJSON(path, map[string]int{"loaded": 4}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteFileMissingDir(t *testing.T) {
	err := AtomicWriteFile(filepath.Join(t.TempDir(), "nope", "x"), []byte("x"), 0o600)
	assert.Error(t, err)
}

func TestEnsureDirsAndValidFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, EnsureDirs(nested))
	assert.DirExists(t, nested)

	empty := filepath.Join(root, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	assert.False(t, ValidFile(empty))
	assert.False(t, ValidFile(nested))
	assert.False(t, ValidFile(filepath.Join(root, "missing")))
}
