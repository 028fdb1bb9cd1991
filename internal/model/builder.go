package model

import (
	"fmt"
	"sync"
)

// Builder assembles Records from extracted field maps. Only whitelisted
// field keys are copied onto the record; unrecognized keys are dropped
// silently, so site crawlers can hand over whatever they scraped without
// polluting the record shape.
type Builder struct {
	mu    sync.Mutex
	built int
}

// NewBuilder creates a Builder with a zeroed record counter.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build creates a Record from source metadata and extracted fields.
// Source and SourceURL always come from meta, never from the field map.
func (b *Builder) Build(meta SourceMeta, fields map[string]any) *Record {
	r := &Record{
		Source:    meta.Source,
		SourceURL: meta.SourceURL,
	}

	for key, value := range fields {
		switch key {
		case "title":
			r.Title = stringValue(value)
		case "description":
			r.Description = stringValue(value)
		case "amount":
			r.Amount = stringValue(value)
		case "deadline":
			r.Deadline = stringValue(value)
		case "application_url":
			r.ApplicationURL = stringValue(value)
		case "eligibility":
			r.Eligibility = stringValue(value)
		case "requirements":
			r.Requirements = stringValue(value)
		case "provider":
			r.Provider = stringValue(value)
		case "category":
			r.Category = stringValue(value)
		case "tags":
			r.RawTags = value
		default:
			// Unknown keys are dropped, not an error.
		}
	}

	b.mu.Lock()
	b.built++
	b.mu.Unlock()

	return r
}

// Built returns how many records this builder has assembled.
func (b *Builder) Built() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
