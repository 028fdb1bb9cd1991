package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Default(t *testing.T) {
	c := Default()

	tests := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"stem keyword", "Engineering Excellence Award", "", "STEM"},
		{"case insensitive", "NURSING Scholarship", "", "Healthcare"},
		{"keyword in description", "Annual Award", "for students pursuing a career in finance", "Business"},
		{"substring containment", "Mathletes Fund", "", "STEM"},
		{"no match", "Community Spirit Award", "for local volunteers", "General"},
		{"empty", "", "", "General"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.title, tt.description))
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := Default()

	// Text matches both STEM ("science") and Business ("business"); the
	// table order decides, not match position in the text.
	got := c.Classify("Business of Science Scholarship", "")
	assert.Equal(t, "STEM", got)
}

func TestClassify_CustomTableOrder(t *testing.T) {
	c := New([]Entry{
		{Category: "Journalism", Keywords: []string{"journalism", "media", "broadcasting"}},
		{Category: "Environmental", Keywords: []string{"environmental", "forestry", "wildlife"}},
	})

	assert.Equal(t, "Journalism", c.Classify("Media and Environmental Reporting Grant", ""))
	assert.Equal(t, "Environmental", c.Classify("Forestry Futures", ""))
	assert.Equal(t, "General", c.Classify("Chess Club Award", ""))
}

func TestClassify_EmptyTable(t *testing.T) {
	c := New(nil)
	assert.Equal(t, "General", c.Classify("Engineering", "science"))
}
