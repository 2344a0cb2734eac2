// Package textproc provides text normalisation for the analysis pipeline.
// It segments raw text into sentences, tokenises words, filters stop-words
// and non-alphabetic tokens, and computes max-normalised word frequencies.
// The primary path uses a language-aware tokenizer; every operation falls
// back to regex splitting when that path is unavailable.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
)

var (
	wordPattern     = regexp.MustCompile(`\b\w+\b`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
	spaceRuns       = regexp.MustCompile(`\s+`)
)

// Token is a single normalised word form.
type Token struct {
	Text       string
	Alphabetic bool
	Stopword   bool
}

// Sentence is a raw sentence with its position in the document.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Normalizer tokenises text into sentences and words. It holds only static
// tables and is safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
}

// NewNormalizer creates a Normalizer with the built-in English stop-word set.
func NewNormalizer() *Normalizer {
	return &Normalizer{stopwords: stopwordSet()}
}

// Sentences splits text into trimmed sentences in document order. The
// language-aware segmenter is tried first; on failure the text is split on
// runs of '.', '!' and '?' with empties discarded.
func (n *Normalizer) Sentences(text string) []string {
	text = strings.TrimSpace(spaceRuns.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err == nil {
		sents := doc.Sentences()
		out := make([]string, 0, len(sents))
		for _, s := range sents {
			if t := strings.TrimSpace(s.Text); t != "" {
				out = append(out, t)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	parts := sentencePattern.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IndexedSentences returns the document's sentences with their indexes.
func (n *Normalizer) IndexedSentences(text string) []Sentence {
	raw := n.Sentences(text)
	out := make([]Sentence, len(raw))
	for i, s := range raw {
		out[i] = Sentence{Index: i, Text: s}
	}
	return out
}

// Words tokenises text into lower-cased word tokens. The language-aware
// tokenizer is tried first, falling back to \b\w+\b.
func (n *Normalizer) Words(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err == nil {
		toks := doc.Tokens()
		out := make([]string, 0, len(toks))
		for _, t := range toks {
			out = append(out, strings.ToLower(t.Text))
		}
		if len(out) > 0 {
			return out
		}
	}
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Tokens returns the word tokens of text annotated with their alphabetic and
// stop-word flags.
func (n *Normalizer) Tokens(text string) []Token {
	words := n.Words(text)
	out := make([]Token, len(words))
	for i, w := range words {
		out[i] = Token{
			Text:       w,
			Alphabetic: isAlphabetic(w),
			Stopword:   n.IsStopword(w),
		}
	}
	return out
}

// ContentWords returns the lower-cased alphabetic non-stop-word tokens of
// text, the only tokens that participate in frequency scoring.
func (n *Normalizer) ContentWords(text string) []string {
	words := n.Words(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if isAlphabetic(w) && !n.IsStopword(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsStopword reports whether the lower-cased word is in the stop-word set.
func (n *Normalizer) IsStopword(word string) bool {
	_, ok := n.stopwords[word]
	return ok
}

func isAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
