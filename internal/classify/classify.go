// Package classify maps free text onto the scholarship category taxonomy
// using ordered keyword tables. Sites may carry their own vocabularies but
// the algorithm is fixed: case-insensitive substring containment, first
// matching category wins, "General" when nothing matches.
package classify

import "strings"

// Entry pairs a category with the keywords that select it. Entries are
// evaluated in slice order, so more specific categories belong earlier.
type Entry struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Classifier performs ordered first-match keyword classification.
type Classifier struct {
	entries []Entry
}

// New creates a Classifier over the given ordered entries. An empty table
// classifies everything as General.
func New(entries []Entry) *Classifier {
	return &Classifier{entries: entries}
}

// Default returns a Classifier with the shared cross-site keyword table.
func Default() *Classifier {
	return New([]Entry{
		{Category: "STEM", Keywords: []string{"stem", "engineering", "computer", "technology", "science", "math", "programming"}},
		{Category: "Business", Keywords: []string{"business", "economics", "finance", "accounting", "mba", "marketing"}},
		{Category: "Healthcare", Keywords: []string{"medical", "nursing", "health", "medicine", "pharmacy", "dental"}},
		{Category: "Arts", Keywords: []string{"art", "music", "theater", "creative", "design", "literature", "humanities"}},
		{Category: "Education", Keywords: []string{"education", "teaching", "teacher", "pedagogy"}},
		{Category: "Need-Based", Keywords: []string{"need", "financial", "low-income", "pell"}},
		{Category: "Merit-Based", Keywords: []string{"merit", "academic", "achievement", "gpa", "honor"}},
	})
}

// Classify concatenates the given text parts, case-folds, and returns the
// first category whose keyword list has any keyword present as a
// substring. No match returns "General".
func (c *Classifier) Classify(parts ...string) string {
	text := strings.ToLower(strings.Join(parts, " "))
	for _, e := range c.entries {
		for _, kw := range e.Keywords {
			if strings.Contains(text, kw) {
				return e.Category
			}
		}
	}
	return "General"
}
