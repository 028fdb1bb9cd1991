package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarship-crawler/internal/model"
)

func TestClean_StampsMetadata(t *testing.T) {
	s := NewClean("collegescholarships")
	fixed := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	r := validRecord()
	r.Source = "something-else"
	require.NoError(t, s.Process(context.Background(), r))

	assert.Equal(t, fixed, r.ScrapedDate)
	assert.Equal(t, fixed, r.LastUpdated)
	assert.Equal(t, r.ScrapedDate, r.LastUpdated)
	assert.True(t, r.IsActive)
	// Source is overwritten with the crawler identifier.
	assert.Equal(t, "collegescholarships", r.Source)
}

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "General"},
		{"STEM", "STEM"},
		{"Computer Science", "STEM"},
		{"Technology & Innovation", "STEM"},
		{"business administration", "Business"},
		{"Liberal Arts", "Arts"},
		{"humanities", "Arts"},
		{"Public Health", "Healthcare"},
		{"nursing", "Healthcare"},
		{"Need-Based Aid", "Need-Based"},
		{"merit award", "Merit-Based"},
		{"general studies", "General"},
		{"Journalism", "General"},
		{"Law", "General"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalCategory(tt.in))
		})
	}
}

func TestCanonicalCategory_FirstKeyWins(t *testing.T) {
	// "math" appears before "business" in the mapping, so mixed text
	// resolves to STEM regardless of word order.
	assert.Equal(t, "STEM", CanonicalCategory("business math"))
}

func TestClean_CategoryDefault(t *testing.T) {
	s := NewClean("uncf")
	r := validRecord()
	r.Category = ""

	require.NoError(t, s.Process(context.Background(), r))
	assert.Equal(t, "General", r.Category)
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"comma string", "stem, engineering, women", []string{"stem", "engineering", "women"}},
		{"string with empties", "a,, b , ", []string{"a", "b"}},
		{"slice unchanged", []string{"a", "b"}, []string{"a", "b"}},
		{"any slice", []any{"x", "y"}, []string{"x", "y"}},
		{"number", 123, []string{}},
		{"nil", nil, []string{}},
		{"map", map[string]string{"k": "v"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestClean_NormalizesTagsOntoRecord(t *testing.T) {
	s := NewClean("hsf")
	r := validRecord()
	r.RawTags = "hispanic, first-generation"

	require.NoError(t, s.Process(context.Background(), r))
	assert.Equal(t, []string{"hispanic", "first-generation"}, r.Tags)
}

func TestClean_NeverDrops(t *testing.T) {
	s := NewClean("apia")
	// Even an entirely empty record is cleaned, not dropped.
	r := &model.Record{}
	require.NoError(t, s.Process(context.Background(), r))
	assert.Equal(t, "General", r.Category)
	assert.Equal(t, []string{}, r.Tags)
}
