package pipeline

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// ValidationStage drops records that lack required content. The required
// field check short-circuits: the first missing field (in declared order)
// drops the record and later fields are not inspected.
type ValidationStage struct {
	mu        sync.Mutex
	processed int
	dropped   int
}

// NewValidation creates the validation stage.
func NewValidation() *ValidationStage {
	return &ValidationStage{}
}

func (s *ValidationStage) Name() string  { return "validation" }
func (s *ValidationStage) Priority() int { return 100 }

func (s *ValidationStage) Process(ctx context.Context, r *model.Record) error {
	s.mu.Lock()
	s.processed++
	s.mu.Unlock()

	required := []struct {
		name  string
		value string
	}{
		{"title", r.Title},
		{"description", r.Description},
		{"amount", r.Amount},
		{"deadline", r.Deadline},
		{"application_url", r.ApplicationURL},
	}
	for _, f := range required {
		if f.value == "" {
			s.countDrop()
			zap.L().Warn("validation: missing required field",
				zap.String("field", f.name),
				zap.String("title", r.Title),
			)
			return &Drop{Reason: "missing required field: " + f.name}
		}
	}

	if !strings.HasPrefix(r.ApplicationURL, "http://") && !strings.HasPrefix(r.ApplicationURL, "https://") {
		s.countDrop()
		zap.L().Warn("validation: invalid url format", zap.String("url", r.ApplicationURL))
		return &Drop{Reason: "invalid URL format: " + r.ApplicationURL}
	}

	// Amounts without a single digit ("Full tuition", "Varies") are
	// suspicious but legitimate; warn and let the record through.
	if !strings.ContainsFunc(r.Amount, unicode.IsDigit) {
		zap.L().Warn("validation: amount contains no digits",
			zap.String("amount", r.Amount),
			zap.String("title", r.Title),
		)
	}

	return nil
}

func (s *ValidationStage) countDrop() {
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}

// Report returns the running processed/dropped counts.
func (s *ValidationStage) Report() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"processed": s.processed,
		"dropped":   s.dropped,
	}
}
