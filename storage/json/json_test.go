package json

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecteru2/preload/lock/flock"
)

type doc struct {
	Items []string `json:"items"`
}

func (d *doc) Init() {
	if d.Items == nil {
		d.Items = []string{}
	}
}

func newStore(t *testing.T) (*Store[doc], string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	return New[doc](path, flock.New(filepath.Join(dir, "doc.lock"))), path
}

func TestStoreMissingFileInits(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.With(context.Background(), func(d *doc) error {
		assert.NotNil(t, d.Items)
		assert.Empty(t, d.Items)
		return nil
	}))
}

func TestStoreUpdatePersists(t *testing.T) {
	ctx := context.Background()
	s, path := newStore(t)

	require.NoError(t, s.Update(ctx, func(d *doc) error {
		d.Items = append(d.Items, "a")
		return nil
	}))
	require.NoError(t, s.Update(ctx, func(d *doc) error {
		d.Items = append(d.Items, "b")
		return nil
	}))
	require.NoError(t, s.With(ctx, func(d *doc) error {
		assert.Equal(t, []string{"a", "b"}, d.Items)
		return nil
	}))
	assert.FileExists(t, path)
}

func TestStoreUpdateErrorSkipsWrite(t *testing.T) {
	s, path := newStore(t)
	boom := errors.New("boom")
	err := s.Update(context.Background(), func(d *doc) error {
		d.Items = append(d.Items, "lost")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, path)
}

func TestStoreCorruptFile(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	err := s.With(context.Background(), func(*doc) error { return nil })
	assert.Error(t, err)
}
