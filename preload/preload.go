package preload

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/projecteru2/core/log"
	"golang.org/x/sync/errgroup"

	"github.com/projecteru2/preload/config"
	"github.com/projecteru2/preload/loader"
	"github.com/projecteru2/preload/types"
	"github.com/projecteru2/preload/version"
)

// Version identifies this preloader release.
var Version = "Version " + version.VERSION

// Report summarizes a settled batch.
type Report struct {
	ID         string                  `json:"id"`
	BaseURL    string                  `json:"base_url"`
	Paths      []string                `json:"paths"`
	Results    map[string]bool         `json:"results"`
	Images     map[string]*types.Image `json:"images"`
	Loaded     int                     `json:"loaded"`
	Failed     int                     `json:"failed"`
	Bytes      int64                   `json:"bytes"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
}

// Total returns the number of dispatched paths.
func (r *Report) Total() int {
	return len(r.Paths)
}

// FailedPaths returns the distinct paths that failed, sorted.
func (r *Report) FailedPaths() []string {
	var out []string
	for path, ok := range r.Results {
		if !ok {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}

// Elapsed returns the wall time of the batch.
func (r *Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Preloader dispatches image loads.
type Preloader struct {
	loader   loader.Loader
	location string
	limit    int
}

// New creates a Preloader that fetches over HTTP according to conf.
func New(conf *config.Config) *Preloader {
	return NewWithLoader(conf, loader.NewHTTP(conf))
}

// NewWithLoader creates a Preloader backed by l. An empty conf.Location
// falls back to the current working directory.
func NewWithLoader(conf *config.Config, l loader.Loader) *Preloader {
	location := conf.Location
	if location == "" {
		if loc, err := config.WorkdirLocation(); err == nil {
			location = loc
		}
	}
	return &Preloader{
		loader:   l,
		location: location,
		limit:    conf.PoolSize,
	}
}

// Preload resolves refs, loads every path relative to the base URL and
// blocks until all loads have settled. opts.Finished has run by the time
// Preload returns. Individual load failures are reported, never returned;
// the only error is ErrNoReferences.
func (p *Preloader) Preload(ctx context.Context, opts Options, refs ...Reference) (*Report, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	logger := log.WithFunc("preload.Preload")

	report := &Report{
		ID:        uuid.NewString(),
		BaseURL:   ResolveBaseURL(opts.BaseURL, p.location),
		Paths:     Resolve(ctx, refs...),
		StartedAt: time.Now(),
	}
	logger.Infof(ctx, "batch %s: preloading %d image(s) from %s", report.ID, len(report.Paths), report.BaseURL)

	b := newBatch(len(report.Paths), opts)
	if len(report.Paths) == 0 {
		b.complete(ctx)
	}

	var g errgroup.Group
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}
	for _, path := range report.Paths {
		url := report.BaseURL + path
		g.Go(func() error {
			img, err := p.loader.Load(ctx, url)
			b.settle(ctx, path, url, img, err)
			return nil
		})
	}
	_ = g.Wait()

	b.mu.Lock()
	report.Results = b.results
	report.Images = b.images
	report.Loaded = b.loaded
	report.Failed = b.failed
	report.Bytes = b.bytes
	b.mu.Unlock()
	report.FinishedAt = time.Now()

	logger.Infof(ctx, "batch %s: %d loaded, %d failed in %s", report.ID, report.Loaded, report.Failed, report.Elapsed())
	return report, nil
}

// Preload is the loosely typed entry point. opts goes through
// NormalizeOptions and refs through ReferencesFrom before dispatching with
// a default HTTP Preloader.
func Preload(ctx context.Context, opts any, refs ...any) (*Report, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	return New(config.DefaultConfig()).PreloadValues(ctx, opts, refs...)
}

// PreloadValues is Preload on p with loosely typed arguments.
func (p *Preloader) PreloadValues(ctx context.Context, opts any, refs ...any) (*Report, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	typed := ReferencesFrom(ctx, refs...)
	if len(typed) == 0 {
		// every argument was unusable; still settle as an empty batch
		typed = []Reference{Sequence(nil)}
	}
	return p.Preload(ctx, NormalizeOptions(opts), typed...)
}
