package sentiment

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/textlens/text-analysis-platform/internal/textproc"
)

func newAnalyzer() *Analyzer {
	return New(textproc.NewNormalizer())
}

func TestAnalyzeLabels(t *testing.T) {
	a := newAnalyzer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive", "This product is absolutely wonderful and I love it!", "Positive"},
		{"negative", "This is terrible, awful and I hate everything about it.", "Negative"},
		{"neutral", "The package contains a cable and a manual.", "Neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Analyze(tt.text)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if got.Sentiment != tt.want {
				t.Errorf("Sentiment = %q (polarity %v), want %q", got.Sentiment, got.Polarity, tt.want)
			}
			if got.Confidence != math.Abs(got.Polarity) {
				t.Errorf("Confidence = %v, want |polarity| = %v", got.Confidence, math.Abs(got.Polarity))
			}
		})
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := newAnalyzer()
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := a.Analyze(text); err == nil {
			t.Errorf("Analyze(%q) succeeded, want error", text)
		}
	}
}

func TestAnalyzeSentenceBreakdown(t *testing.T) {
	a := newAnalyzer()
	got, err := a.Analyze("I love this wonderful product! The delivery was terrible and awful.")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.SentenceCount != 2 || len(got.SentenceAnalysis) != 2 {
		t.Fatalf("SentenceCount = %d with %d entries, want 2", got.SentenceCount, len(got.SentenceAnalysis))
	}
	if got.SentenceAnalysis[0].Sentiment != "Positive" {
		t.Errorf("first sentence = %q, want Positive", got.SentenceAnalysis[0].Sentiment)
	}
	if got.SentenceAnalysis[1].Sentiment != "Negative" {
		t.Errorf("second sentence = %q, want Negative", got.SentenceAnalysis[1].Sentiment)
	}
}

func TestAnalyzeEmotions(t *testing.T) {
	text := "I am so happy and excited, though a little worried about tomorrow."
	scores := AnalyzeEmotions(text)

	if len(scores) != len(emotionKeywords) {
		t.Fatalf("got %d emotions, want %d", len(scores), len(emotionKeywords))
	}
	wordCount := float64(len(strings.Fields(text)))
	if want := 2 / wordCount; math.Abs(scores["joy"]-want) > 1e-9 {
		t.Errorf("joy = %v, want %v (happy + excited over word count)", scores["joy"], want)
	}
	if want := 1 / wordCount; math.Abs(scores["fear"]-want) > 1e-9 {
		t.Errorf("fear = %v, want %v", scores["fear"], want)
	}
	if scores["anger"] != 0 {
		t.Errorf("anger = %v, want 0", scores["anger"])
	}
}

func TestAnalyzeEmotionsWordBoundaries(t *testing.T) {
	// "madrid" must not count as "mad".
	scores := AnalyzeEmotions("We travelled to madrid last summer.")
	if scores["anger"] != 0 {
		t.Errorf("anger = %v, want 0 for substring inside another word", scores["anger"])
	}
}

func TestAnalyzeIntensity(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLevel string
	}{
		{"intensified", "This is very extremely really good.", "High"},
		{"diminished", "It was slightly odd and somewhat dull, kind of boring.", "Low"},
		{"no modifiers", "The cat sat on the mat.", "Medium"},
		{"balanced", "It was very good but somewhat slow.", "Medium"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeIntensity(tt.text)
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %q (ratio %v), want %q", got.Level, got.Ratio, tt.wantLevel)
			}
		})
	}
}

func TestAnalyzeIntensityCounts(t *testing.T) {
	got := AnalyzeIntensity("It was very very good, kind of surprising.")
	if got.Intensifiers != 2 {
		t.Errorf("Intensifiers = %d, want 2", got.Intensifiers)
	}
	if got.Diminishers != 1 {
		t.Errorf("Diminishers = %d, want 1 for the kind-of phrase", got.Diminishers)
	}
	if want := 2.0 / 3.0; math.Abs(got.Ratio-want) > 1e-9 {
		t.Errorf("Ratio = %v, want %v", got.Ratio, want)
	}
}

func TestCompare(t *testing.T) {
	a := newAnalyzer()
	got, err := a.Compare(context.Background(), []string{
		"This is absolutely wonderful and amazing!",
		"The report covers the third quarter.",
		"This is horrible, terrible and disgusting.",
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if got.TotalTexts != 3 {
		t.Fatalf("TotalTexts = %d, want 3", got.TotalTexts)
	}
	if got.MostPositive.TextID != "Text 1" {
		t.Errorf("MostPositive = %s, want Text 1", got.MostPositive.TextID)
	}
	if got.MostNegative.TextID != "Text 3" {
		t.Errorf("MostNegative = %s, want Text 3", got.MostNegative.TextID)
	}

	sum := 0.0
	for _, c := range got.Comparisons {
		sum += c.Polarity
	}
	if math.Abs(got.AveragePolarity-sum/3) > 1e-9 {
		t.Errorf("AveragePolarity = %v, want %v", got.AveragePolarity, sum/3)
	}
}

func TestCompareDropsInvalidTexts(t *testing.T) {
	a := newAnalyzer()
	got, err := a.Compare(context.Background(), []string{"", "A genuinely wonderful day."})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if got.TotalTexts != 1 {
		t.Errorf("TotalTexts = %d, want 1 after dropping the empty text", got.TotalTexts)
	}
	if got.Comparisons[0].TextID != "Text 2" {
		t.Errorf("TextID = %s, want original position Text 2", got.Comparisons[0].TextID)
	}
}

func TestCompareAllInvalid(t *testing.T) {
	a := newAnalyzer()
	if _, err := a.Compare(context.Background(), []string{"", "  "}); err == nil {
		t.Error("expected error when no valid texts remain")
	}
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	a := newAnalyzer()
	got, err := a.AnalyzeBatch(context.Background(), []string{"A wonderful day.", "", "A terrible day."})
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if got.TotalTexts != 3 || got.Succeeded != 2 || got.Failed != 1 {
		t.Fatalf("totals = %d/%d/%d, want 3 texts, 2 ok, 1 failed",
			got.TotalTexts, got.Succeeded, got.Failed)
	}
	if got.Items[1].Error == "" || got.Items[1].Result != nil {
		t.Errorf("item 2 = %+v, want error only", got.Items[1])
	}
	if got.Items[0].TextID != 1 || got.Items[2].TextID != 3 {
		t.Errorf("IDs = %d,%d, want 1-based order preserved", got.Items[0].TextID, got.Items[2].TextID)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	a := newAnalyzer()
	text := strings.Repeat("I love this wonderful product! The delivery was terrible and awful. ", 5)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(text); err != nil {
			b.Fatal(err)
		}
	}
}
