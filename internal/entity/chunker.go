package entity

import (
	"log/slog"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

var orgSuffixes = map[string]bool{
	"Inc": true, "Corp": true, "LLC": true, "Ltd": true,
	"Company": true, "Corporation": true, "Group": true,
	"Institute": true, "University": true, "College": true,
}

// chunk extracts PERSON, ORGANIZATION and LOCATION matches from the
// statistical tagger, independent of the rule patterns. Geopolitical labels
// map into LOCATION. Offsets are not available from this path and are
// populated with nominal zero-based values; confidence is fixed lower than
// the pattern source. Returns an empty collection when tagging fails.
func chunk(text string) Collection {
	entities := Collection{
		Person:       nil,
		Organization: nil,
		Location:     nil,
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		slog.Default().With("component", "entity-chunker").
			Warn("statistical chunking failed", "error", err)
		return entities
	}

	for _, ent := range doc.Entities() {
		var cat Category
		switch ent.Label {
		case "PERSON":
			cat = Person
		case "GPE", "GSP":
			cat = Location
		default:
			continue
		}
		entities[cat] = append(entities[cat], chunkMatch(ent.Text))
	}

	// The tagger has no ORGANIZATION label. Proper-noun runs ending in a
	// corporate suffix are chunked as organizations instead.
	var run []string
	flush := func() {
		if len(run) >= 2 && orgSuffixes[run[len(run)-1]] {
			entities[Organization] = append(entities[Organization], chunkMatch(strings.Join(run, " ")))
		}
		run = run[:0]
	}
	for _, tok := range doc.Tokens() {
		if tok.Tag == "NNP" || tok.Tag == "NNPS" {
			run = append(run, tok.Text)
			continue
		}
		flush()
	}
	flush()

	return entities
}

func chunkMatch(text string) Match {
	return Match{
		Text:       text,
		Start:      0,
		End:        len(text),
		Confidence: ChunkerConfidence,
		Source:     SourceChunker,
	}
}
