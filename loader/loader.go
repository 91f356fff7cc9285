// Package loader fetches single images and verifies they decode.
//
// A load settles as a success only when the fetch returns 200 and the body
// decodes as one of the registered image formats, which mirrors when a
// browser fires an image's load event.
package loader

import (
	"context"

	"github.com/projecteru2/preload/types"
)

// Loader fetches and decodes one image.
// Implementations must be safe for concurrent use from multiple goroutines.
type Loader interface {
	Load(ctx context.Context, url string) (*types.Image, error)
}

// Func adapts a plain function to the Loader interface.
type Func func(ctx context.Context, url string) (*types.Image, error)

// Load calls f.
func (f Func) Load(ctx context.Context, url string) (*types.Image, error) { return f(ctx, url) }
