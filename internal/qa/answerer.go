// Package qa answers free-form questions against a context document by
// classifying the question, matching its keywords against ranked sentences
// and extracting a type-specific answer span.
package qa

import (
	"regexp"
	"strings"

	"github.com/textlens/text-analysis-platform/internal/textproc"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// MinContextLength is the minimum trimmed context length for answering.
const MinContextLength = 20

// DefaultTopK is the number of relevant sentences considered per question.
const DefaultTopK = 3

const shortAnswerWordLimit = 15

// questionTypes fixes the classification iteration order. The first category
// whose pattern matches wins.
var questionTypes = []struct {
	name     string
	patterns []*regexp.Regexp
}{
	{"who", compile(`\bwho\b`, `\bperson\b`, `\bpeople\b`, `\bauthor\b`, `\bwriter\b`)},
	{"what", compile(`\bwhat\b`, `\bthing\b`, `\bobject\b`, `\bitem\b`)},
	{"when", compile(`\bwhen\b`, `\btime\b`, `\bdate\b`, `\byear\b`, `\bday\b`)},
	{"where", compile(`\bwhere\b`, `\bplace\b`, `\blocation\b`, `\bcity\b`, `\bcountry\b`)},
	{"why", compile(`\bwhy\b`, `\breason\b`, `\bcause\b`, `\bbecause\b`)},
	{"how", compile(`\bhow\b`, `\bmethod\b`, `\bway\b`, `\bprocess\b`)},
}

// answerPatterns extract spans for the question types that admit one. The
// patterns are intentionally case-sensitive; capitalisation is the signal.
var answerPatterns = map[string][]*regexp.Regexp{
	"who": compile(
		`\b[A-Z][a-z]+ [A-Z][a-z]+\b`,
		`\b(?:Dr|Mr|Mrs|Ms)\. [A-Z][a-z]+\b`,
		`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`,
	),
	"when": compile(
		`\b(?:1[0-9]{3}|20\d{2})\b`,
		`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\b`,
		`\b\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\b`,
		`\b(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b`,
		`\b\d{1,2}:\d{2}(?:\s*(?:AM|PM))?\b`,
	),
	"where": compile(
		`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*(?:\s+(?:City|State|Country|Street|Avenue|Road|Boulevard))\b`,
		`\bin\s+[A-Z][a-z]+\b`,
		`\bat\s+[A-Z][a-z]+\b`,
	),
}

// questionStopwords are dropped during keyword extraction; interrogatives
// carry no content.
var questionStopwords = map[string]bool{
	"what": true, "who": true, "when": true, "where": true, "why": true, "how": true,
	"is": true, "are": true, "was": true, "were": true, "the": true, "a": true,
	"an": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// ScoredSentence pairs a context sentence with its keyword relevance score.
type ScoredSentence struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// Answer is the outcome of answering one question.
type Answer struct {
	Answer            string           `json:"answer"`
	Confidence        float64          `json:"confidence"`
	QuestionType      string           `json:"question_type"`
	Keywords          []string         `json:"keywords"`
	RelevantSentences []ScoredSentence `json:"relevant_sentences,omitempty"`
	ContextLength     int              `json:"context_length"`
	AnswerLength      int              `json:"answer_length,omitempty"`
}

// Answerer answers questions over context documents. Safe for concurrent
// use.
type Answerer struct {
	norm *textproc.Normalizer
	topK int
}

// New creates an Answerer considering topK relevant sentences per question.
func New(norm *textproc.Normalizer, topK int) *Answerer {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Answerer{norm: norm, topK: topK}
}

// ClassifyQuestion returns the question type: the first matching category in
// fixed who/what/when/where/why/how order, or "general".
func (a *Answerer) ClassifyQuestion(question string) string {
	lower := strings.ToLower(question)
	for _, qt := range questionTypes {
		for _, re := range qt.patterns {
			if re.MatchString(lower) {
				return qt.name
			}
		}
	}
	return "general"
}

// ExtractKeywords pulls content words over two characters plus multi-word
// noun phrases from the question, lower-cased and deduplicated in first-seen
// order.
func (a *Answerer) ExtractKeywords(question string) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(k string) {
		if len(k) > 2 && !questionStopwords[k] && !seen[k] {
			seen[k] = true
			keywords = append(keywords, k)
		}
	}
	for _, w := range a.norm.Words(question) {
		add(w)
	}
	for _, p := range a.norm.NounPhrases(question) {
		add(p)
	}
	return keywords
}

// RankSentences scores every context sentence against the keywords and
// returns the topK by score. An exact keyword substring scores 2 and each
// keyword sub-word found scores 1, so an exact match also collects its
// sub-word credit. Scores are divided by the sentence's word count. Ties
// keep document order; results stay in score order.
func (a *Answerer) RankSentences(context string, keywords []string) []ScoredSentence {
	sentences := a.norm.Sentences(context)
	scored := make([]ScoredSentence, len(sentences))
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		score := 0.0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				score += 2
			}
			for _, word := range strings.Fields(keyword) {
				if strings.Contains(lower, word) {
					score++
				}
			}
		}
		if n := len(strings.Fields(sentence)); n > 0 {
			score /= float64(n)
		}
		scored[i] = ScoredSentence{Sentence: sentence, Score: score}
	}
	stableSortByScore(scored)
	if len(scored) > a.topK {
		scored = scored[:a.topK]
	}
	return scored
}

func stableSortByScore(s []ScoredSentence) {
	// Insertion sort keeps equal scores in document order.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Score > s[j-1].Score; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// extractByType returns the first type-specific pattern match over the
// concatenated sentences, or the first sentence when nothing matches.
func extractByType(sentences []string, questionType string) string {
	all := strings.Join(sentences, " ")
	for _, re := range answerPatterns[questionType] {
		if m := re.FindString(all); m != "" {
			return m
		}
	}
	if len(sentences) > 0 {
		return sentences[0]
	}
	return "No specific answer found."
}

// AnswerQuestion answers a single question against the context.
func (a *Answerer) AnswerQuestion(question, context string) (*Answer, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(context) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "both question and context are required")
	}
	if len(strings.TrimSpace(context)) < MinContextLength {
		return nil, apperrors.Newf(apperrors.ErrInputTooShort,
			"context must be at least %d characters", MinContextLength)
	}

	questionType := a.ClassifyQuestion(question)
	keywords := a.ExtractKeywords(question)
	relevant := a.RankSentences(context, keywords)

	if len(relevant) == 0 {
		return &Answer{
			Answer:        "I couldn't find relevant information in the provided context.",
			Confidence:    0.1,
			QuestionType:  questionType,
			Keywords:      keywords,
			ContextLength: len(context),
		}, nil
	}

	sentences := make([]string, len(relevant))
	for i, s := range relevant {
		sentences[i] = s.Sentence
	}

	var answer string
	switch questionType {
	case "who", "when", "where":
		answer = extractByType(sentences, questionType)
	default:
		answer = sentences[0]
		if len(sentences) > 1 && len(strings.Fields(answer)) < shortAnswerWordLimit {
			answer += " " + sentences[1]
		}
	}

	confidence := relevant[0].Score * 2
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &Answer{
		Answer:            answer,
		Confidence:        confidence,
		QuestionType:      questionType,
		Keywords:          keywords,
		RelevantSentences: relevant,
		ContextLength:     len(context),
		AnswerLength:      len(answer),
	}, nil
}
