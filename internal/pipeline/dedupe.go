package pipeline

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// DedupStage drops records already seen in this run and assigns the
// content fingerprint as the record's ItemID. The seen-set lives for one
// pipeline instance only; cross-run dedup is left to downstream sinks
// that upsert by item id.
type DedupStage struct {
	mu         sync.Mutex
	seen       map[string]struct{}
	duplicates int
}

// NewDedup creates the deduplication stage with an empty seen-set.
func NewDedup() *DedupStage {
	return &DedupStage{seen: make(map[string]struct{})}
}

func (s *DedupStage) Name() string  { return "dedup" }
func (s *DedupStage) Priority() int { return 200 }

// Fingerprint computes the deterministic content digest over the
// lower-cased, trimmed (title, provider, application_url) triple. Missing
// fields contribute empty strings.
func Fingerprint(title, provider, applicationURL string) string {
	norm := func(v string) string {
		return strings.ToLower(strings.TrimSpace(v))
	}
	sum := md5.Sum([]byte(norm(title) + "|" + norm(provider) + "|" + norm(applicationURL)))
	return hex.EncodeToString(sum[:])
}

func (s *DedupStage) Process(ctx context.Context, r *model.Record) error {
	fp := Fingerprint(r.Title, r.Provider, r.ApplicationURL)

	// Check-and-insert under one lock so "first duplicate wins" holds
	// when records are processed concurrently.
	s.mu.Lock()
	if _, dup := s.seen[fp]; dup {
		s.duplicates++
		s.mu.Unlock()
		zap.L().Warn("dedup: duplicate item", zap.String("title", r.Title))
		return &Drop{Reason: "duplicate item"}
	}
	s.seen[fp] = struct{}{}
	s.mu.Unlock()

	r.ItemID = fp
	return nil
}

// Report returns the duplicate count found so far.
func (s *DedupStage) Report() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{"duplicates": s.duplicates}
}
