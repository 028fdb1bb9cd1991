package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Build_CopiesKnownFields(t *testing.T) {
	b := NewBuilder()
	meta := SourceMeta{Source: "uncf", SourceURL: "https://uncf.org/scholarships"}

	r := b.Build(meta, map[string]any{
		"title":           "STEM Scholars Program",
		"description":     "Annual award for STEM majors.",
		"amount":          "$5,000",
		"deadline":        "2026-01-15",
		"application_url": "https://uncf.org/apply",
		"eligibility":     "3.0 GPA",
		"requirements":    "Essay | Transcript",
		"provider":        "UNCF",
		"category":        "STEM",
		"tags":            "stem, minority",
	})

	assert.Equal(t, "STEM Scholars Program", r.Title)
	assert.Equal(t, "Annual award for STEM majors.", r.Description)
	assert.Equal(t, "$5,000", r.Amount)
	assert.Equal(t, "2026-01-15", r.Deadline)
	assert.Equal(t, "https://uncf.org/apply", r.ApplicationURL)
	assert.Equal(t, "3.0 GPA", r.Eligibility)
	assert.Equal(t, "Essay | Transcript", r.Requirements)
	assert.Equal(t, "UNCF", r.Provider)
	assert.Equal(t, "STEM", r.Category)
	assert.Equal(t, "stem, minority", r.RawTags)
	assert.Equal(t, "uncf", r.Source)
	assert.Equal(t, "https://uncf.org/scholarships", r.SourceURL)
}

func TestBuilder_Build_DropsUnknownKeys(t *testing.T) {
	b := NewBuilder()

	r := b.Build(SourceMeta{Source: "hsf"}, map[string]any{
		"title":        "Award",
		"gpa":          "3.5",
		"random_field": 42,
	})

	assert.Equal(t, "Award", r.Title)
	assert.Empty(t, r.Description)
	// Unknown keys leave no trace on the record.
	assert.Empty(t, r.Category)
	assert.Nil(t, r.RawTags)
}

func TestBuilder_Build_SourceMetaWinsOverFields(t *testing.T) {
	b := NewBuilder()

	// "source" is not a whitelisted field key; provenance always comes
	// from the meta argument.
	r := b.Build(SourceMeta{Source: "apia", SourceURL: "https://apiascholars.org"}, map[string]any{
		"source":     "spoofed",
		"source_url": "https://evil.example.com",
		"title":      "Award",
	})

	assert.Equal(t, "apia", r.Source)
	assert.Equal(t, "https://apiascholars.org", r.SourceURL)
}

func TestBuilder_Built_Counts(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		b.Build(SourceMeta{Source: "s"}, map[string]any{"title": "x"})
	}
	assert.Equal(t, 3, b.Built())
}

func TestBuilder_Build_CoercesNonStringValues(t *testing.T) {
	b := NewBuilder()

	r := b.Build(SourceMeta{Source: "s"}, map[string]any{
		"title":  nil,
		"amount": 5000,
		"tags":   123,
	})

	assert.Empty(t, r.Title)
	assert.Equal(t, "5000", r.Amount)
	assert.Equal(t, 123, r.RawTags)
}
