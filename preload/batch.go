package preload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/preload/types"
)

// batch tracks the settlement of one Preload call.
// All fields are guarded by mu and mutated only in settle; callbacks run
// under mu so they observe settlements one at a time.
type batch struct {
	mu       sync.Mutex
	pending  int
	loaded   int
	failed   int
	bytes    int64
	results  map[string]bool
	images   map[string]*types.Image
	finished FinishedFunc
	onError  ErrorFunc
	fired    bool
}

func newBatch(total int, opts Options) *batch {
	return &batch{
		pending:  total,
		results:  make(map[string]bool, total),
		images:   make(map[string]*types.Image, total),
		finished: opts.Finished,
		onError:  opts.Error,
	}
}

// settle records the outcome of one load and fires Finished after the last.
func (b *batch) settle(ctx context.Context, path, url string, img *types.Image, err error) {
	logger := log.WithFunc("preload.settle")

	b.mu.Lock()
	defer b.mu.Unlock()

	if img == nil {
		img = &types.Image{}
	}
	img.Path = path
	img.URL = url
	img.SettleAt = time.Now()

	if err != nil {
		logger.Warnf(ctx, "unable to preload %s: %v", path, err)
		b.failed++
		b.results[path] = false
		img.Loaded = false
		img.Error = err.Error()
		if b.onError != nil {
			callback(ctx, "error", func() { b.onError(path, err) })
		}
	} else {
		logger.Infof(ctx, "done preloading %s", path)
		b.loaded++
		b.bytes += img.Size
		b.results[path] = true
		img.Loaded = true
	}
	b.images[path] = img

	b.pending--
	if b.pending == 0 {
		b.fireLocked(ctx)
	}
}

// complete fires Finished for a batch that had nothing to dispatch.
func (b *batch) complete(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == 0 {
		b.fireLocked(ctx)
	}
}

func (b *batch) fireLocked(ctx context.Context) {
	if b.fired {
		return
	}
	b.fired = true
	if b.finished != nil {
		callback(ctx, "finished", func() { b.finished(b.results, b.loaded, b.failed) })
	}
}

// callback runs a user callback, logging instead of propagating a panic.
func callback(ctx context.Context, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %s: %v", ErrCallbackPanic, name, r)
			log.WithFunc("preload.callback").Errorf(ctx, err, "%s callback failed", name)
		}
	}()
	fn()
}
