package storage

import "context"

// Initer is optionally implemented by T to initialize zero-value fields
// (e.g., nil slices) after loading or when the backing store is empty.
type Initer interface {
	Init()
}

// Store provides locked read/modify/write access to a document of type T.
type Store[T any] interface {
	// With loads the document under lock and passes it to fn.
	With(ctx context.Context, fn func(*T) error) error
	// Update runs fn under lock and persists the document if fn returns nil.
	Update(ctx context.Context, fn func(*T) error) error
}
