// Package extract implements selector-fallback field extraction over
// parsed HTML documents. Source sites have wildly inconsistent markup, so
// each field carries an ordered list of selectors, most specific first;
// the first selector that yields data wins and no per-site branching is
// needed at the call site.
package extract

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultSelectors maps field names to their fallback selector lists.
// Ordering encodes "most specific markup first"; the generic catch-alls
// at the tail only fire when a site uses none of the common conventions.
var DefaultSelectors = map[string][]string{
	"title": {
		"h1::text",
		"h2::text",
		".title::text",
		".scholarship-title::text",
		`[class*="title"]::text`,
	},
	"description": {
		".description::text",
		".content::text",
		".summary::text",
		"p::text",
		`[class*="description"]::text`,
	},
	"amount": {
		".amount::text",
		".value::text",
		".award::text",
		`[class*="amount"]::text`,
		`[class*="value"]::text`,
	},
	"deadline": {
		".deadline::text",
		".due-date::text",
		".expires::text",
		`[class*="deadline"]::text`,
		`[class*="due"]::text`,
	},
	"requirements": {
		".requirements::text",
		".eligibility::text",
		".criteria::text",
		`[class*="requirement"]::text`,
		`[class*="eligible"]::text`,
	},
	"eligibility": {
		".eligibility li::text",
		".requirements li::text",
		".criteria li::text",
		`[class*="eligib"] li::text`,
	},
	"application_url": {
		`a[href*="apply"]::attr(href)`,
		"a.apply-button::attr(href)",
		".application-link a::attr(href)",
	},
	"provider": {
		".provider::text",
		".organization::text",
		".sponsor::text",
	},
	"tags": {
		".tags a::text",
		".categories a::text",
	},
}

// Extractor resolves field names to selector lists and applies the
// ordered-fallback strategy against documents.
type Extractor struct {
	registry map[string][]string
}

// New creates an Extractor backed by DefaultSelectors.
func New() *Extractor {
	return NewWithOverrides(nil)
}

// NewWithOverrides creates an Extractor whose registry is DefaultSelectors
// with the given per-field selector lists layered on top. An override
// replaces the default list for its field wholesale.
func NewWithOverrides(overrides map[string][]string) *Extractor {
	registry := make(map[string][]string, len(DefaultSelectors)+len(overrides))
	for field, selectors := range DefaultSelectors {
		registry[field] = selectors
	}
	for field, selectors := range overrides {
		if len(selectors) > 0 {
			registry[field] = selectors
		}
	}
	return &Extractor{registry: registry}
}

// Extract tries each selector in order and returns the first non-empty
// match, trimmed. Selectors that fail to compile are skipped. If the
// explicit selector list is empty, the registry list for the field is
// used. A total miss returns "" and logs a diagnostic.
func (e *Extractor) Extract(doc *Document, field string, selectors ...string) string {
	for _, expr := range e.selectorsFor(field, selectors) {
		spec, err := parseSelector(expr)
		if err != nil {
			zap.L().Debug("extract: selector failed",
				zap.String("field", field),
				zap.String("selector", expr),
				zap.Error(err),
			)
			continue
		}
		if v := strings.TrimSpace(doc.first(spec)); v != "" {
			return v
		}
	}

	zap.L().Warn("extract: no selector matched",
		zap.String("field", field),
		zap.String("url", doc.URL),
	)
	return ""
}

// ExtractAll applies the same ordered fallback, but the first selector
// with any matches returns all of them (trimmed, empties dropped) and no
// further selectors are tried. A total miss returns an empty slice.
func (e *Extractor) ExtractAll(doc *Document, field string, selectors ...string) []string {
	for _, expr := range e.selectorsFor(field, selectors) {
		spec, err := parseSelector(expr)
		if err != nil {
			zap.L().Debug("extract: selector failed",
				zap.String("field", field),
				zap.String("selector", expr),
				zap.Error(err),
			)
			continue
		}

		raw := doc.all(spec)
		if len(raw) == 0 {
			continue
		}

		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	zap.L().Warn("extract: no selector matched",
		zap.String("field", field),
		zap.String("url", doc.URL),
	)
	return nil
}

func (e *Extractor) selectorsFor(field string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	return e.registry[field]
}
