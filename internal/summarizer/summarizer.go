// Package summarizer produces extractive summaries, bullet-point digests and
// keyword extracts by ranking sentences against max-normalised word
// frequencies.
package summarizer

import (
	"sort"
	"strings"

	"github.com/textlens/text-analysis-platform/internal/textproc"
)

// MinTextLength is the trimmed length below which extractive summarisation
// returns the input unchanged.
const MinTextLength = 50

const topPhraseLimit = 5

// Summarizer ranks sentences for summarisation. Safe for concurrent use.
type Summarizer struct {
	norm *textproc.Normalizer
}

// New creates a Summarizer over the given normalizer.
func New(norm *textproc.Normalizer) *Summarizer {
	return &Summarizer{norm: norm}
}

// ExtractiveResult is the outcome of extractive summarisation.
type ExtractiveResult struct {
	Summary           string  `json:"summary"`
	OriginalLength    int     `json:"original_length,omitempty"`
	SummaryLength     int     `json:"summary_length,omitempty"`
	OriginalSentences int     `json:"original_sentences,omitempty"`
	SentencesSelected int     `json:"sentences_selected"`
	CompressionRatio  float64 `json:"compression_ratio"`
	SummaryRatio      float64 `json:"summary_ratio"`
	Note              string  `json:"note,omitempty"`
}

// Extractive selects the top-scoring ratio of sentences and re-joins them in
// document order. Inputs under MinTextLength characters or with two or fewer
// sentences pass through unchanged with ratio 1.0. At least one sentence is
// always selected.
func (s *Summarizer) Extractive(text string, ratio float64) *ExtractiveResult {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return &ExtractiveResult{
			Summary:           text,
			SummaryRatio:      1.0,
			SentencesSelected: 1,
			CompressionRatio:  1.0,
			Note:              "text too short for summarization",
		}
	}

	sentences := s.norm.Sentences(text)
	if len(sentences) <= 2 {
		return &ExtractiveResult{
			Summary:           text,
			SummaryRatio:      1.0,
			SentencesSelected: len(sentences),
			CompressionRatio:  1.0,
			OriginalSentences: len(sentences),
		}
	}

	count := int(float64(len(sentences)) * ratio)
	if count < 1 {
		count = 1
	}
	selected := s.topSentences(text, sentences, count)
	summary := strings.Join(selected, " ")

	return &ExtractiveResult{
		Summary:           summary,
		OriginalLength:    len(strings.Fields(text)),
		SummaryLength:     len(strings.Fields(summary)),
		OriginalSentences: len(sentences),
		SentencesSelected: count,
		CompressionRatio:  float64(len(summary)) / float64(len(text)),
		SummaryRatio:      ratio,
	}
}

// topSentences returns the count highest-scoring sentences re-sorted into
// document order. Score ties keep the earlier sentence.
func (s *Summarizer) topSentences(text string, sentences []string, count int) []string {
	freq := s.norm.WordFrequencies(text)
	scores := s.norm.ScoreSentences(sentences, freq)

	indices := make([]int, len(sentences))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})
	if count > len(indices) {
		count = len(indices)
	}
	picked := append([]int(nil), indices[:count]...)
	sort.Ints(picked)

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = sentences[idx]
	}
	return out
}

// BulletResult is the outcome of bullet-point summarisation.
type BulletResult struct {
	BulletPoints      []string `json:"bullet_points"`
	NumPoints         int      `json:"num_points"`
	OriginalSentences int      `json:"original_sentences,omitempty"`
	Type              string   `json:"type"`
}

// BulletPoints renders the top maxPoints sentences as bullet lines. When the
// document has maxPoints sentences or fewer, every sentence becomes a bullet
// without scoring.
func (s *Summarizer) BulletPoints(text string, maxPoints int) *BulletResult {
	sentences := s.norm.Sentences(text)

	if len(sentences) <= maxPoints {
		points := make([]string, len(sentences))
		for i, sent := range sentences {
			points[i] = "• " + sent
		}
		return &BulletResult{
			BulletPoints: points,
			NumPoints:    len(points),
			Type:         "bullet_point",
		}
	}

	selected := s.topSentences(text, sentences, maxPoints)
	points := make([]string, len(selected))
	for i, sent := range selected {
		points[i] = "• " + sent
	}
	return &BulletResult{
		BulletPoints:      points,
		NumPoints:         len(points),
		OriginalSentences: len(sentences),
		Type:              "bullet_point",
	}
}

// KeywordResult is the outcome of keyword extraction.
type KeywordResult struct {
	Keywords         []string           `json:"keywords"`
	KeyPhrases       []string           `json:"key_phrases"`
	WordFrequencies  map[string]float64 `json:"word_frequencies"`
	TotalUniqueWords int                `json:"total_unique_words"`
	Type             string             `json:"type"`
}

// Keywords extracts the numKeywords highest-frequency content words plus the
// five most frequent noun phrases. Frequency ties order alphabetically for
// determinism.
func (s *Summarizer) Keywords(text string, numKeywords int) *KeywordResult {
	freq := s.norm.WordFrequencies(text)

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(a, b int) bool {
		if freq[words[a]] != freq[words[b]] {
			return freq[words[a]] > freq[words[b]]
		}
		return words[a] < words[b]
	})
	if len(words) > numKeywords {
		words = words[:numKeywords]
	}

	topFreq := make(map[string]float64, len(words))
	for _, w := range words {
		topFreq[w] = freq[w]
	}

	return &KeywordResult{
		Keywords:         words,
		KeyPhrases:       topPhrases(s.norm.NounPhrases(text), topPhraseLimit),
		WordFrequencies:  topFreq,
		TotalUniqueWords: len(freq),
		Type:             "keyword",
	}
}

// topPhrases returns the n most frequent phrases, ties by first occurrence.
func topPhrases(phrases []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, p := range phrases {
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}
