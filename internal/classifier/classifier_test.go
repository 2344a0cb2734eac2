package classifier

import (
	"math"
	"strings"
	"testing"
)

func TestClassifyCategories(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"technology", "The software engineer wrote code for the new app using machine learning.", "technology"},
		{"business", "The company reported record sales and profit this market quarter.", "business"},
		{"sports", "The team won the match after the player scored in the final game.", "sports"},
		{"health", "The doctor prescribed medicine and the hospital scheduled treatment.", "health"},
		{"education", "The teacher asked every student to study before the university class.", "education"},
		{"entertainment", "The actor starred in a new movie with an amazing music score.", "entertainment"},
		{"news", "Breaking report from the press: the journalist filed a headline story.", "news"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(tt.text)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got.Category != tt.want {
				t.Errorf("Category = %q (scores %v), want %q", got.Category, got.AllScores, tt.want)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("Confidence = %v, want in (0,1]", got.Confidence)
			}
		})
	}
}

func TestClassifyConfidenceFormula(t *testing.T) {
	c := New()
	text := "software code app digital filler filler filler filler filler filler"
	got, err := c.Classify(text)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	// 4 technology hits over 10 words, doubled.
	if want := 0.8; math.Abs(got.Confidence-want) > 1e-9 {
		t.Errorf("Confidence = %v, want %v", got.Confidence, want)
	}
}

func TestClassifyConfidenceCapped(t *testing.T) {
	c := New()
	got, err := c.Classify("software code app digital internet tech")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want capped at 1.0", got.Confidence)
	}
}

func TestClassifyFallbackPersonal(t *testing.T) {
	c := New()
	// No category keywords, strong positive sentiment.
	got, err := c.Classify("What an absolutely wonderful, amazing experience that was!")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Category != "personal" {
		t.Errorf("Category = %q, want personal for keyword-less emotional text", got.Category)
	}
}

func TestClassifyFallbackGeneral(t *testing.T) {
	c := New()
	got, err := c.Classify("Quarter three ended in September under ordinary circumstances.")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Category != "general" {
		t.Errorf("Category = %q, want general", got.Category)
	}
	if got.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want fixed 0.3", got.Confidence)
	}
}

func TestClassifyTooShort(t *testing.T) {
	c := New()
	for _, text := range []string{"", "   "} {
		if _, err := c.Classify(text); err == nil {
			t.Errorf("Classify(%q) succeeded, want error", text)
		}
	}
	// A single non-space character meets the minimum and falls back to general.
	result, err := c.Classify("x")
	if err != nil {
		t.Fatalf("Classify(\"x\"): %v", err)
	}
	if result.Category != "general" {
		t.Errorf("Category = %q, want general", result.Category)
	}
}

func TestClassifyAllScoresPresent(t *testing.T) {
	c := New()
	got, err := c.Classify("An ordinary sentence without topical keywords at all.")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(got.AllScores) != len(categories) {
		t.Errorf("AllScores has %d entries, want %d", len(got.AllScores), len(categories))
	}
}

func TestDescribe(t *testing.T) {
	if d := Describe("technology"); !strings.Contains(d, "Technology") {
		t.Errorf("Describe(technology) = %q", d)
	}
	if d := Describe("nonexistent"); d != "No description available" {
		t.Errorf("Describe(nonexistent) = %q", d)
	}
}
