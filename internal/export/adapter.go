// Package export delivers cleaned scholarship records to downstream
// destinations. Each destination is an Adapter wrapped in a pipeline
// stage; adapter failures are logged and counted but never drop the
// record, so one broken destination cannot starve the others.
package export

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// Adapter is a single export destination. Open reports whether the
// adapter is enabled for this run; a disabled adapter is skipped
// silently. Close flushes whatever the adapter buffered.
type Adapter interface {
	Name() string
	Open(ctx context.Context) (enabled bool, err error)
	Export(ctx context.Context, r *model.Record) error
	Close(ctx context.Context) error
}

// Stage adapts an Adapter into a pipeline stage. Export errors are
// absorbed here: the record continues down the chain regardless.
type Stage struct {
	adapter  Adapter
	priority int

	mu       sync.Mutex
	opened   bool
	enabled  bool
	exported int
	failed   int
}

// NewStage wraps an adapter at the given pipeline priority. Export
// stages run after cleaning, so priorities start at 400.
func NewStage(a Adapter, priority int) *Stage {
	return &Stage{adapter: a, priority: priority}
}

func (s *Stage) Name() string  { return "export_" + s.adapter.Name() }
func (s *Stage) Priority() int { return s.priority }

func (s *Stage) Process(ctx context.Context, r *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		s.opened = true
		enabled, err := s.adapter.Open(ctx)
		if err != nil {
			zap.L().Error("export: adapter failed to open, disabling for this run",
				zap.String("adapter", s.adapter.Name()),
				zap.Error(err),
			)
			s.enabled = false
			s.failed++
			return nil
		}
		s.enabled = enabled
		if !enabled {
			zap.L().Info("export: adapter disabled", zap.String("adapter", s.adapter.Name()))
		}
	}

	if !s.enabled {
		return nil
	}

	if err := s.adapter.Export(ctx, r); err != nil {
		s.failed++
		zap.L().Error("export: failed to export record",
			zap.String("adapter", s.adapter.Name()),
			zap.String("item_id", r.ItemID),
			zap.String("title", r.Title),
			zap.Error(err),
		)
		return nil
	}

	s.exported++
	return nil
}

// Close flushes the underlying adapter if it was opened and enabled.
func (s *Stage) Close(ctx context.Context) error {
	s.mu.Lock()
	opened, enabled := s.opened, s.enabled
	s.mu.Unlock()

	if !opened || !enabled {
		return nil
	}
	return s.adapter.Close(ctx)
}

// Report implements pipeline.Reporter.
func (s *Stage) Report() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"exported": s.exported,
		"errors":   s.failed,
	}
}
