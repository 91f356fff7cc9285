package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/projecteru2/preload/lock"
	"github.com/projecteru2/preload/storage"
	"github.com/projecteru2/preload/utils"
)

// compile-time interface check.
var _ storage.Store[struct{}] = (*Store[struct{}])(nil)

// Store keeps a JSON document in a single file guarded by locker.
// If *T implements storage.Initer, Init() runs after every load.
type Store[T any] struct {
	filePath string
	locker   lock.Locker
}

// New creates a Store for filePath guarded by locker.
func New[T any](filePath string, locker lock.Locker) *Store[T] {
	return &Store[T]{filePath: filePath, locker: locker}
}

// With loads the document under lock and passes it to fn.
// A missing file yields a zero-value T.
func (s *Store[T]) With(ctx context.Context, fn func(*T) error) error {
	return lock.WithLock(ctx, s.locker, func() error {
		data, err := s.load()
		if err != nil {
			return err
		}
		return fn(data)
	})
}

// Update loads the document under lock, runs fn and atomically writes the
// result back when fn returns nil.
func (s *Store[T]) Update(ctx context.Context, fn func(*T) error) error {
	return s.With(ctx, func(data *T) error {
		if err := fn(data); err != nil {
			return err
		}
		return utils.AtomicWriteJSON(s.filePath, data)
	})
}

func (s *Store[T]) load() (*T, error) {
	var data T
	raw, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", s.filePath, err)
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.filePath, err)
		}
	}
	if initer, ok := any(&data).(storage.Initer); ok {
		initer.Init()
	}
	return &data, nil
}
