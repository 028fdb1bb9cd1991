package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

// categoryMapping folds free-form category text onto the closed taxonomy.
// Order matters: the first key contained in the lower-cased input wins.
var categoryMapping = []struct {
	key       string
	canonical string
}{
	{"stem", "STEM"},
	{"science", "STEM"},
	{"technology", "STEM"},
	{"engineering", "STEM"},
	{"math", "STEM"},
	{"mathematics", "STEM"},
	{"business", "Business"},
	{"arts", "Arts"},
	{"liberal arts", "Arts"},
	{"humanities", "Arts"},
	{"health", "Healthcare"},
	{"medical", "Healthcare"},
	{"nursing", "Healthcare"},
	{"general", "General"},
	{"need-based", "Need-Based"},
	{"merit", "Merit-Based"},
}

// CleanStage stamps lifecycle metadata and normalizes category and tags.
// It sets Source to the crawler identifier unconditionally so attribution
// stays canonical no matter what the builder was handed. This stage never
// drops.
type CleanStage struct {
	source string
	now    func() time.Time
}

// NewClean creates the cleaning stage for the given crawler identifier.
func NewClean(source string) *CleanStage {
	return &CleanStage{source: source, now: time.Now}
}

func (s *CleanStage) Name() string  { return "clean" }
func (s *CleanStage) Priority() int { return 300 }

func (s *CleanStage) Process(ctx context.Context, r *model.Record) error {
	ts := s.now().UTC()
	r.ScrapedDate = ts
	r.LastUpdated = ts
	r.IsActive = true
	r.Source = s.source

	r.Category = CanonicalCategory(r.Category)
	r.Tags = NormalizeTags(r.RawTags)

	return nil
}

// CanonicalCategory maps a raw category string onto the closed set,
// defaulting to General for anything unrecognized or absent.
func CanonicalCategory(category string) string {
	if category == "" {
		return "General"
	}
	lower := strings.ToLower(category)
	for _, m := range categoryMapping {
		if strings.Contains(lower, m.key) {
			return m.canonical
		}
	}
	return "General"
}

// NormalizeTags coerces whatever a site handed back into a string slice.
// A comma-separated string is split and trimmed, a slice passes through,
// anything else becomes an empty slice.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case string:
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
