package entity

import (
	"regexp"
	"strings"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

type categoryPatterns struct {
	category Category
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// rulePatterns is the ordered pattern table. Order matters twice: categories
// are processed in canonical order, and within a category earlier patterns
// claim a surface form first under case-insensitive dedup.
var rulePatterns = []categoryPatterns{
	{Person, compileAll(
		`\b[A-Z][a-z]+ [A-Z][a-z]+\b`,
		`\b(?:Mr|Mrs|Ms|Dr|Prof)\. [A-Z][a-z]+\b`,
		`\b[A-Z][a-z]+ [A-Z]\. [A-Z][a-z]+\b`,
	)},
	{Organization, compileAll(
		`\b[A-Z][a-z]+ (?:Inc|Corp|LLC|Ltd|Company|Corporation|Group|Institute|University)\b`,
		`\b(?:Microsoft|Google|Apple|Amazon|Facebook|Tesla|IBM|Intel|Oracle)\b`,
		`\b[A-Z][A-Z]+ [A-Z][a-z]+\b`,
	)},
	{Location, compileAll(
		`\b[A-Z][a-z]+ (?:City|State|Country|Street|Avenue|Road|Boulevard|Drive|Lane)\b`,
		`\b(?:New York|Los Angeles|Chicago|Houston|Phoenix|Philadelphia|San Antonio|San Diego|Dallas|San Jose)\b`,
		`\b(?:California|Texas|Florida|New York|Pennsylvania|Illinois|Ohio|Georgia|North Carolina|Michigan)\b`,
		`\b(?:USA|United States|UK|United Kingdom|Canada|Australia|Germany|France|Japan|China)\b`,
	)},
	{Date, compileAll(
		`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`,
		`\b\d{1,2}/\d{1,2}/\d{4}\b`,
		`\b\d{4}-\d{2}-\d{2}\b`,
		`\b(?:19|20)\d{2}\b`,
	)},
	{Time, compileAll(
		`\b\d{1,2}:\d{2}(?:\s*(?:AM|PM|am|pm))?\b`,
		`\b(?:morning|afternoon|evening|night|noon|midnight)\b`,
	)},
	{Money, compileAll(
		`\$\d+(?:,\d{3})*(?:\.\d{2})?\b`,
		`\b\d+(?:,\d{3})*\s*(?:dollars?|USD|cents?)\b`,
		`(?:€|£|¥)\d+(?:,\d{3})*(?:\.\d{2})?\b`,
	)},
	{Email, compileAll(
		`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
	)},
	{Phone, compileAll(
		`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`,
		`\b\d{3}-\d{3}-\d{4}\b`,
	)},
	{URL, compileAll(
		`https?://[^\s<>"]+|www\.[^\s<>"]+\.[^\s<>"]+`,
		`\b[A-Za-z0-9.-]+\.[A-Za-z]{2,}(?:/[^\s]*)?\b`,
	)},
}

// extractRuleBased runs every category's pattern list against the whole
// document and returns positioned matches with pattern confidence. Within a
// category, matches are deduplicated case-insensitively with the first
// occurrence winning.
func extractRuleBased(text string) Collection {
	entities := make(Collection, len(rulePatterns))
	for _, cp := range rulePatterns {
		var matches []Match
		seen := make(map[string]bool)
		for _, re := range cp.patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				matched := text[loc[0]:loc[1]]
				key := strings.ToLower(matched)
				if seen[key] {
					continue
				}
				seen[key] = true
				matches = append(matches, Match{
					Text:       matched,
					Start:      loc[0],
					End:        loc[1],
					Confidence: PatternConfidence,
					Source:     SourcePattern,
				})
			}
		}
		entities[cp.category] = matches
	}
	return entities
}

// ExtractCustom applies user-supplied name/pattern pairs to text and returns
// the set of distinct matched strings per pattern name, a deliberately
// coarser shape than category extraction: no offsets, no confidence. Match
// order is first occurrence.
func ExtractCustom(text string, patterns map[string]string) (map[string][]string, error) {
	if len(patterns) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidConfig, "no custom patterns supplied")
	}
	results := make(map[string][]string, len(patterns))
	for name, expr := range patterns {
		re, err := regexp.Compile(`(?i)` + expr)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidConfig, "pattern %q does not compile: %v", name, err)
		}
		seen := make(map[string]bool)
		distinct := []string{}
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				distinct = append(distinct, m)
			}
		}
		results[name] = distinct
	}
	return results, nil
}
