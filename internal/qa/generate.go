package qa

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

var (
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	properPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	causeTriggers   = []string{"because", "reason", "cause"}
	processTriggers = []string{"method", "process", "way", "procedure"}
)

// ContextAnalysis summarises the signals question generation found.
type ContextAnalysis struct {
	Sentences   int `json:"sentences"`
	ProperNouns int `json:"proper_nouns"`
	NounPhrases int `json:"noun_phrases"`
	YearsFound  int `json:"years_found"`
}

// GenerateResult is the outcome of question generation.
type GenerateResult struct {
	Questions []string        `json:"generated_questions"`
	Count     int             `json:"question_count"`
	Analysis  ContextAnalysis `json:"context_analysis"`
}

// GenerateQuestions proposes up to numQuestions questions answerable from
// the context, driven by simple surface signals: proper nouns yield a who
// question, noun phrases yield what questions, years and capitalised spans
// yield when/where questions, and causal or procedural trigger words yield
// why/how questions.
func (a *Answerer) GenerateQuestions(context string, numQuestions int) (*GenerateResult, error) {
	sentences := a.norm.Sentences(context)
	if len(sentences) < 2 {
		return nil, apperrors.New(apperrors.ErrInputTooShort, "context too short to generate questions")
	}

	var questions []string

	properNouns := properNounWords(context)
	if len(properNouns) > 0 {
		questions = append(questions, fmt.Sprintf("Who is %s?", properNouns[0]))
	}

	phrases := a.norm.NounPhrases(context)
	for i, phrase := range phrases {
		if i == 2 {
			break
		}
		questions = append(questions, fmt.Sprintf("What is %s?", phrase))
	}

	years := yearPattern.FindAllString(context, -1)
	if len(years) > 0 {
		questions = append(questions, "When did this happen?")
	}
	if properPattern.MatchString(context) {
		questions = append(questions, "Where did this take place?")
	}

	lower := strings.ToLower(context)
	if containsAny(lower, causeTriggers) {
		questions = append(questions, "Why did this happen?")
	}
	if containsAny(lower, processTriggers) {
		questions = append(questions, "How does this work?")
	}

	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}

	return &GenerateResult{
		Questions: questions,
		Count:     len(questions),
		Analysis: ContextAnalysis{
			Sentences:   len(sentences),
			ProperNouns: distinctCount(properNouns),
			NounPhrases: len(phrases),
			YearsFound:  len(years),
		},
	}, nil
}

// properNounWords returns the capitalised words of text longer than two
// characters, in document order.
func properNounWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(w) > 2 {
			r := []rune(w)
			if unicode.IsUpper(r[0]) {
				out = append(out, w)
			}
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func distinctCount(words []string) int {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return len(set)
}
