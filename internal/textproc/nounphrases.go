package textproc

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// nounPhraseTags are the POS tags that may participate in a noun phrase.
var nounPhraseTags = map[string]bool{
	"JJ": true, "JJR": true, "JJS": true,
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// NounPhrases extracts lower-cased multi-word noun phrases from text by
// chunking runs of adjective and noun tags. A run qualifies only when it
// spans at least two tokens and contains at least one noun. Returns nil when
// tagging is unavailable.
func (n *Normalizer) NounPhrases(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	var phrases []string
	var run []string
	hasNoun := false
	flush := func() {
		if len(run) >= 2 && hasNoun {
			phrases = append(phrases, strings.ToLower(strings.Join(run, " ")))
		}
		run = run[:0]
		hasNoun = false
	}
	for _, tok := range doc.Tokens() {
		if nounPhraseTags[tok.Tag] && isAlphabetic(tok.Text) {
			run = append(run, tok.Text)
			if isNounTag(tok.Tag) {
				hasNoun = true
			}
			continue
		}
		flush()
	}
	flush()
	return phrases
}
