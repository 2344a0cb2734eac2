// Package classifier assigns text to one of a fixed set of topical
// categories by word-boundary keyword scoring, with a sentiment-driven
// fallback when no keyword hits.
package classifier

import (
	"regexp"
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// MinTextLength is the minimum trimmed input length for classification.
const MinTextLength = 1

const (
	// strongSentimentThreshold routes keyword-less text with pronounced
	// polarity into the personal category.
	strongSentimentThreshold = 0.3

	fallbackConfidence        = 0.3
	personalConfidenceFactor  = 0.7
	keywordConfidenceCeiling  = 1.0
	keywordConfidenceMultiple = 2.0
)

type category struct {
	name     string
	keywords []string
}

// categories fixes the scoring order; the first highest score wins a tie.
var categories = []category{
	{"technology", []string{"computer", "software", "tech", "programming", "code", "app", "digital", "internet", "ai", "machine learning"}},
	{"business", []string{"company", "market", "finance", "money", "profit", "sales", "business", "corporate", "investment"}},
	{"sports", []string{"game", "player", "team", "score", "match", "sport", "football", "basketball", "soccer", "tennis"}},
	{"health", []string{"doctor", "medicine", "hospital", "health", "disease", "treatment", "medical", "patient", "therapy"}},
	{"education", []string{"school", "student", "teacher", "learn", "education", "university", "study", "class", "academic"}},
	{"entertainment", []string{"movie", "music", "show", "actor", "celebrity", "film", "concert", "entertainment", "tv"}},
	{"news", []string{"breaking", "report", "news", "journalist", "headline", "story", "media", "press"}},
	{"personal", []string{"i", "me", "my", "myself", "personal", "life", "family", "friend", "relationship"}},
}

var descriptions = map[string]string{
	"technology":    "Technology-related content including computers, software, and digital topics",
	"business":      "Business and finance-related content",
	"sports":        "Sports and athletics-related content",
	"health":        "Health and medical-related content",
	"education":     "Educational and academic content",
	"entertainment": "Entertainment industry and media content",
	"news":          "News and journalism content",
	"personal":      "Personal experiences and opinions",
	"general":       "General content that doesn't fit specific categories",
	"unknown":       "Unable to classify the content",
}

var categoryPatterns = func() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(categories))
	for _, c := range categories {
		patterns := make([]*regexp.Regexp, len(c.keywords))
		for i, kw := range c.keywords {
			patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		out[c.name] = patterns
	}
	return out
}()

// Result is the outcome of classifying one text.
type Result struct {
	Category    string             `json:"category"`
	Confidence  float64            `json:"confidence"`
	AllScores   map[string]float64 `json:"all_scores,omitempty"`
	Description string             `json:"description"`
	TextLength  int                `json:"text_length"`
	WordCount   int                `json:"word_count"`
}

// Classifier scores text against the category keyword tables. Safe for
// concurrent use.
type Classifier struct{}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify assigns text to its best-scoring category. Scores count
// word-boundary keyword hits normalised by word count; confidence is the
// winning score doubled and capped at 1.0. With no keyword hits, strong
// polarity routes to personal, otherwise general at fixed 0.3 confidence.
func (c *Classifier) Classify(text string) (*Result, error) {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return nil, apperrors.New(apperrors.ErrInputTooShort, "text is empty")
	}

	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	scores := make(map[string]float64, len(categories))
	best := ""
	bestScore := 0.0
	for _, cat := range categories {
		hits := 0
		for _, re := range categoryPatterns[cat.name] {
			hits += len(re.FindAllStringIndex(lower, -1))
		}
		score := 0.0
		if wordCount > 0 {
			score = float64(hits) / float64(wordCount)
		}
		scores[cat.name] = score
		if score > bestScore {
			best = cat.name
			bestScore = score
		}
	}

	var confidence float64
	if bestScore > 0 {
		confidence = bestScore * keywordConfidenceMultiple
		if confidence > keywordConfidenceCeiling {
			confidence = keywordConfidenceCeiling
		}
	} else {
		polarity := sentitext.PolarityScore(sentitext.Parse(text, lexicon.DefaultLexicon)).Compound
		if polarity > strongSentimentThreshold || polarity < -strongSentimentThreshold {
			best = "personal"
			if polarity < 0 {
				polarity = -polarity
			}
			confidence = polarity * personalConfidenceFactor
		} else {
			best = "general"
			confidence = fallbackConfidence
		}
	}

	return &Result{
		Category:    best,
		Confidence:  confidence,
		AllScores:   scores,
		Description: Describe(best),
		TextLength:  len(text),
		WordCount:   wordCount,
	}, nil
}

// Describe returns the human-readable description of a category.
func Describe(category string) string {
	if d, ok := descriptions[category]; ok {
		return d
	}
	return "No description available"
}
