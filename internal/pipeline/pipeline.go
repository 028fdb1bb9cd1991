// Package pipeline runs scholarship records through an ordered chain of
// processing stages: validation, deduplication, cleaning, then export
// adapters. A stage either passes the record on (possibly mutated) or
// signals a drop, which terminates the chain for that record.
package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// Drop is the control-flow signal a stage returns to halt a record's
// traversal. It is not a fault: the driver absorbs it, counts it, and
// moves on to the next record.
type Drop struct {
	Reason string
}

func (d *Drop) Error() string {
	return "drop: " + d.Reason
}

// AsDrop unwraps err into a *Drop if it is one.
func AsDrop(err error) (*Drop, bool) {
	var d *Drop
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// Stage processes one record at a time. Process returns nil to pass the
// record to the next stage, or a *Drop to terminate the chain. Stages
// must not surface other errors; anything that can go wrong inside a
// stage is the stage's own problem to absorb.
type Stage interface {
	Name() string
	Priority() int
	Process(ctx context.Context, r *model.Record) error
}

// Reporter is implemented by stages that contribute end-of-run counts.
type Reporter interface {
	Report() map[string]int
}

// Pipeline drives records through its stages in ascending priority order.
// One pipeline instance serves a whole crawl run; its counters and the
// stages' shared state (the dedup seen-set) are guarded so records may be
// processed concurrently.
type Pipeline struct {
	stages []Stage

	mu        sync.Mutex
	processed int
	dropped   map[string]int
}

// New creates a Pipeline over the given stages, sorted by priority.
func New(stages ...Stage) *Pipeline {
	sorted := make([]Stage, len(stages))
	copy(sorted, stages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Pipeline{
		stages:  sorted,
		dropped: make(map[string]int),
	}
}

// Run sends one record through every stage in order. It returns true if
// the record survived the full chain, false if it was dropped or the
// context was cancelled mid-chain. Cancellation abandons the record at
// the stage boundary, so partially processed records are never exported.
func (p *Pipeline) Run(ctx context.Context, r *model.Record) bool {
	p.mu.Lock()
	p.processed++
	p.mu.Unlock()

	for _, stage := range p.stages {
		if ctx.Err() != nil {
			zap.L().Debug("pipeline: run cancelled, abandoning record",
				zap.String("title", r.Title),
				zap.String("stage", stage.Name()),
			)
			return false
		}

		err := stage.Process(ctx, r)
		if err == nil {
			continue
		}

		if d, ok := AsDrop(err); ok {
			p.mu.Lock()
			p.dropped[stage.Name()]++
			p.mu.Unlock()
			zap.L().Info("pipeline: record dropped",
				zap.String("stage", stage.Name()),
				zap.String("reason", d.Reason),
				zap.String("title", r.Title),
			)
			return false
		}

		// Stages own their failures; a non-drop error reaching here is a
		// bug, but it must never abort the crawl run.
		zap.L().Error("pipeline: unexpected stage error",
			zap.String("stage", stage.Name()),
			zap.Error(err),
		)
		return false
	}

	return true
}

// Summary merges the pipeline's own counters with every reporting stage's
// counts, keyed as "<stage>_<counter>".
func (p *Pipeline) Summary() map[string]int {
	p.mu.Lock()
	out := map[string]int{"processed": p.processed}
	for stage, n := range p.dropped {
		out["dropped_"+stage] = n
	}
	p.mu.Unlock()

	for _, stage := range p.stages {
		rep, ok := stage.(Reporter)
		if !ok {
			continue
		}
		for k, v := range rep.Report() {
			out[stage.Name()+"_"+k] = v
		}
	}
	return out
}
