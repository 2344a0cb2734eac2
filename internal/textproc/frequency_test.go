package textproc

import (
	"math"
	"testing"
)

func TestWordFrequenciesMaxIsOne(t *testing.T) {
	n := NewNormalizer()
	table := n.WordFrequencies("cat cat cat dog dog bird")
	if len(table) == 0 {
		t.Fatal("expected non-empty table")
	}
	max := 0.0
	for _, v := range table {
		if v > max {
			max = v
		}
		if v <= 0 || v > 1 {
			t.Errorf("frequency %v out of (0,1]", v)
		}
	}
	if max != 1.0 {
		t.Errorf("max frequency = %v, want exactly 1.0", max)
	}
	if got := table["cat"]; got != 1.0 {
		t.Errorf("cat frequency = %v, want 1.0", got)
	}
	if got := table["dog"]; math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("dog frequency = %v, want 2/3", got)
	}
}

func TestWordFrequenciesEmptyForNoQualifyingTokens(t *testing.T) {
	n := NewNormalizer()
	tests := []string{"", "the a an of", "123 456 789", "!!! ???"}
	for _, text := range tests {
		if table := n.WordFrequencies(text); len(table) != 0 {
			t.Errorf("WordFrequencies(%q) = %v, want empty", text, table)
		}
	}
}

func TestScoreSentences(t *testing.T) {
	n := NewNormalizer()
	table := FrequencyTable{"cat": 1.0, "dog": 0.5}
	sentences := []string{
		"cat dog",       // (1.0 + 0.5) / 2
		"cat elephant",  // (1.0 + 0) / 2
		"the of and is", // no qualifying tokens
	}
	scores := n.ScoreSentences(sentences, table)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if math.Abs(scores[0]-0.75) > 1e-9 {
		t.Errorf("scores[0] = %v, want 0.75", scores[0])
	}
	if math.Abs(scores[1]-0.5) > 1e-9 {
		t.Errorf("scores[1] = %v, want 0.5", scores[1])
	}
	if scores[2] != 0 {
		t.Errorf("scores[2] = %v, want 0 for stop-word-only sentence", scores[2])
	}
}

func TestScoreSentencesRepeatedThemeScoresHigher(t *testing.T) {
	n := NewNormalizer()
	text := "Climate change affects oceans. Climate change affects forests. Bananas taste nice."
	table := n.WordFrequencies(text)
	sentences := n.Sentences(text)
	scores := n.ScoreSentences(sentences, table)
	if scores[0] <= scores[2] {
		t.Errorf("thematic sentence scored %v, off-topic scored %v; want thematic higher", scores[0], scores[2])
	}
}

func BenchmarkWordFrequencies(b *testing.B) {
	n := NewNormalizer()
	text := "Natural language processing enables machines to understand human language. " +
		"Language models learn statistical patterns from large text corpora. " +
		"Understanding text requires segmentation, tokenisation and scoring."
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.WordFrequencies(text)
	}
}
