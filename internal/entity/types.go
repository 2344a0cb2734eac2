// Package entity implements named-entity extraction over raw text. Two
// sources feed a merged result: an ordered rule-based pattern matcher and a
// lower-fidelity statistical chunker. Matches are deduplicated
// case-insensitively per category with pattern matches taking precedence.
package entity

// Category is a fixed entity label partitioning extracted matches.
type Category string

const (
	Person       Category = "PERSON"
	Organization Category = "ORGANIZATION"
	Location     Category = "LOCATION"
	Date         Category = "DATE"
	Time         Category = "TIME"
	Money        Category = "MONEY"
	Email        Category = "EMAIL"
	Phone        Category = "PHONE"
	URL          Category = "URL"
)

// Categories is the canonical category order used by merge and reporting.
var Categories = []Category{
	Person, Organization, Location, Date, Time, Money, Email, Phone, URL,
}

// Match sources.
const (
	SourcePattern = "pattern"
	SourceChunker = "chunker"
)

// Source confidences. Offsets are authoritative only for pattern matches;
// chunker matches carry nominal zero-based offsets.
const (
	PatternConfidence = 0.8
	ChunkerConfidence = 0.7
)

// Match is a single positioned entity occurrence.
type Match struct {
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Collection holds merged matches keyed by category. Within one category no
// two entries share text under case-insensitive comparison.
type Collection map[Category][]Match

// Total returns the number of matches across all categories.
func (c Collection) Total() int {
	n := 0
	for _, matches := range c {
		n += len(matches)
	}
	return n
}

// Counts returns the per-category match counts for every known category,
// including zero entries.
func (c Collection) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = len(c[cat])
	}
	return counts
}

// EntityCount pairs an entity text with its occurrence count across
// categories.
type EntityCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}
