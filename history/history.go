// Package history keeps a log of completed preload runs under the root dir.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/preload/config"
	"github.com/projecteru2/preload/lock/flock"
	"github.com/projecteru2/preload/preload"
	"github.com/projecteru2/preload/storage"
	storejson "github.com/projecteru2/preload/storage/json"
	"github.com/projecteru2/preload/utils"
)

// Record is the persisted summary of one run.
type Record struct {
	ID          string    `json:"id"`
	BaseURL     string    `json:"base_url"`
	Total       int       `json:"total"`
	Loaded      int       `json:"loaded"`
	Failed      int       `json:"failed"`
	Bytes       int64     `json:"bytes"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	FailedPaths []string  `json:"failed_paths,omitempty"`
}

// NewRecord summarizes a report.
func NewRecord(r *preload.Report) *Record {
	return &Record{
		ID:          r.ID,
		BaseURL:     r.BaseURL,
		Total:       r.Total(),
		Loaded:      r.Loaded,
		Failed:      r.Failed,
		Bytes:       r.Bytes,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		FailedPaths: r.FailedPaths(),
	}
}

type index struct {
	Records []*Record `json:"records"`
}

func (i *index) Init() {
	if i.Records == nil {
		i.Records = []*Record{}
	}
}

// Store persists Records in a flock-guarded JSON file.
type Store struct {
	store storage.Store[index]
}

// New opens the history store under conf.RootDir.
func New(conf *config.Config) (*Store, error) {
	if err := utils.EnsureDirs(conf.RootDir); err != nil {
		return nil, fmt.Errorf("ensure dirs: %w", err)
	}
	return &Store{
		store: storejson.New[index](conf.HistoryPath(), flock.New(conf.HistoryLockPath())),
	}, nil
}

// Add appends a record for report.
func (s *Store) Add(ctx context.Context, report *preload.Report) error {
	rec := NewRecord(report)
	if err := s.store.Update(ctx, func(idx *index) error {
		idx.Records = append(idx.Records, rec)
		return nil
	}); err != nil {
		return fmt.Errorf("record run %s: %w", rec.ID, err)
	}
	log.WithFunc("history.Add").Infof(ctx, "recorded run %s", rec.ID)
	return nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) (result []*Record, err error) {
	err = s.store.With(ctx, func(idx *index) error {
		for i := len(idx.Records) - 1; i >= 0; i-- {
			if limit > 0 && len(result) == limit {
				break
			}
			result = append(result, idx.Records[i])
		}
		return nil
	})
	return
}

// Prune keeps the newest keep records and returns how many were dropped.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	var dropped int
	err := s.store.Update(ctx, func(idx *index) error {
		if len(idx.Records) <= keep {
			return nil
		}
		dropped = len(idx.Records) - keep
		idx.Records = idx.Records[dropped:]
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	log.WithFunc("history.Prune").Infof(ctx, "pruned %d record(s)", dropped)
	return dropped, nil
}
