package entity

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

func containsText(matches []Match, text string) bool {
	for _, m := range matches {
		if strings.EqualFold(m.Text, text) {
			return true
		}
	}
	return false
}

func TestExtractTooShort(t *testing.T) {
	e := NewExtractor()
	for _, text := range []string{"", "   ", "short", "123456789"} {
		if _, err := e.Extract(text); err == nil {
			t.Errorf("Extract(%q) succeeded, want ErrInputTooShort", text)
		} else if !errors.Is(err, apperrors.ErrInputTooShort) {
			t.Errorf("Extract(%q) error = %v, want ErrInputTooShort", text, err)
		}
	}
}

func TestExtractRoundTrip(t *testing.T) {
	e := NewExtractor()
	result, err := e.Extract("Dr. Sarah Johnson works at Microsoft in New York.")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if !containsText(result.Entities[Person], "Sarah Johnson") &&
		!containsText(result.Entities[Person], "Dr. Sarah Johnson") {
		t.Errorf("PERSON = %v, want Sarah Johnson", result.Entities[Person])
	}
	if !containsText(result.Entities[Organization], "Microsoft") {
		t.Errorf("ORGANIZATION = %v, want Microsoft", result.Entities[Organization])
	}
	if !containsText(result.Entities[Location], "New York") {
		t.Errorf("LOCATION = %v, want New York", result.Entities[Location])
	}
	if result.TotalEntities != result.Entities.Total() {
		t.Errorf("TotalEntities = %d, collection total = %d", result.TotalEntities, result.Entities.Total())
	}
}

func TestExtractDeduplicatesCaseInsensitively(t *testing.T) {
	e := NewExtractor()
	result, err := e.Extract("Contact alice@example.com or ALICE@EXAMPLE.COM for details.")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	emails := result.Entities[Email]
	if len(emails) != 1 {
		t.Fatalf("EMAIL = %v, want exactly 1 after case-insensitive dedup", emails)
	}
	// First occurrence wins.
	if emails[0].Text != "alice@example.com" {
		t.Errorf("kept %q, want first occurrence alice@example.com", emails[0].Text)
	}
}

func TestExtractIsIdempotentPerCategory(t *testing.T) {
	e := NewExtractor()
	text := "Dr. Sarah Johnson works at Microsoft in New York. She met Dr. Sarah Johnson again."
	result, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for cat, matches := range result.Entities {
		seen := make(map[string]bool)
		for _, m := range matches {
			key := strings.ToLower(m.Text)
			if seen[key] {
				t.Errorf("category %s has duplicate text %q", cat, m.Text)
			}
			seen[key] = true
		}
	}
}

func TestExtractPatternConfidenceAndOffsets(t *testing.T) {
	e := NewExtractor()
	text := "The meeting is on January 15, 2024 and costs $1,500.00 total."
	result, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	dates := result.Entities[Date]
	if !containsText(dates, "January 15, 2024") {
		t.Fatalf("DATE = %v, want January 15, 2024", dates)
	}
	for _, m := range dates {
		if m.Source != SourcePattern {
			continue
		}
		if m.Confidence != PatternConfidence {
			t.Errorf("pattern match confidence = %v, want %v", m.Confidence, PatternConfidence)
		}
		if got := text[m.Start:m.End]; got != m.Text {
			t.Errorf("offsets [%d:%d] select %q, want %q", m.Start, m.End, got, m.Text)
		}
	}
	if !containsText(result.Entities[Money], "$1,500.00") {
		t.Errorf("MONEY = %v, want $1,500.00", result.Entities[Money])
	}
}

func TestExtractCategoriesAlwaysPresent(t *testing.T) {
	e := NewExtractor()
	result, err := e.Extract("plain words without entities here")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(result.EntityCounts) != len(Categories) {
		t.Errorf("EntityCounts has %d categories, want %d", len(result.EntityCounts), len(Categories))
	}
	for _, cat := range Categories {
		if _, ok := result.EntityCounts[cat]; !ok {
			t.Errorf("EntityCounts missing category %s", cat)
		}
	}
}

func TestMostCommonOrdering(t *testing.T) {
	c := Collection{
		Person:       {{Text: "Alice"}, {Text: "Bob"}},
		Organization: {{Text: "Alice"}}, // Alice appears twice across categories
	}
	got := mostCommon(c, 10)
	if len(got) != 2 {
		t.Fatalf("mostCommon = %v, want 2 entries", got)
	}
	if got[0].Text != "Alice" || got[0].Count != 2 {
		t.Errorf("top entry = %+v, want Alice with count 2", got[0])
	}
}

func TestExtractCustom(t *testing.T) {
	text := "Codes AB-1234 and CD-5678 and again AB-1234."
	got, err := ExtractCustom(text, map[string]string{
		"Product Codes": `\b[A-Z]{2}-\d{4}\b`,
	})
	if err != nil {
		t.Fatalf("ExtractCustom: %v", err)
	}
	codes := got["Product Codes"]
	if len(codes) != 2 {
		t.Fatalf("matches = %v, want distinct set of 2", codes)
	}
	if codes[0] != "AB-1234" || codes[1] != "CD-5678" {
		t.Errorf("matches = %v, want [AB-1234 CD-5678]", codes)
	}
}

func TestExtractCustomErrors(t *testing.T) {
	if _, err := ExtractCustom("text", nil); err == nil {
		t.Error("expected error for empty pattern map")
	}
	if _, err := ExtractCustom("text", map[string]string{"bad": `[unclosed`}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestExtractBatch(t *testing.T) {
	e := NewExtractor()
	texts := []string{
		"Dr. Sarah Johnson works at Microsoft in New York.",
		"tiny", // skipped, 5 or fewer trimmed characters
		"Contact support at help@example.com before January 15, 2024.",
	}
	batch, err := e.ExtractBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("ExtractBatch: %v", err)
	}
	if batch.TotalTexts != 2 {
		t.Fatalf("TotalTexts = %d, want 2 (short text skipped)", batch.TotalTexts)
	}
	if batch.Items[0].TextID != 1 || batch.Items[1].TextID != 3 {
		t.Errorf("item IDs = %d,%d, want 1-based input positions 1,3",
			batch.Items[0].TextID, batch.Items[1].TextID)
	}
	if batch.TotalEntities != batch.Items[0].TotalEntities+batch.Items[1].TotalEntities {
		t.Errorf("TotalEntities = %d, want sum of item totals", batch.TotalEntities)
	}
	wantAvg := float64(batch.TotalEntities) / 2
	if batch.AveragePerText != wantAvg {
		t.Errorf("AveragePerText = %v, want %v", batch.AveragePerText, wantAvg)
	}
}

func TestExtractBatchEmpty(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBatch(context.Background(), nil); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestExtractBatchPreviewTruncation(t *testing.T) {
	e := NewExtractor()
	long := strings.Repeat("Sarah Johnson visited New York. ", 10)
	batch, err := e.ExtractBatch(context.Background(), []string{long})
	if err != nil {
		t.Fatalf("ExtractBatch: %v", err)
	}
	p := batch.Items[0].Preview
	if !strings.HasSuffix(p, "...") || len(p) != previewLength+3 {
		t.Errorf("preview %q not truncated to %d chars with ellipsis", p, previewLength)
	}
}

func BenchmarkExtract(b *testing.B) {
	e := NewExtractor()
	text := "Dr. Sarah Johnson works at Microsoft in New York. " +
		"She can be reached at sarah.johnson@microsoft.com or 555-123-4567. " +
		"The quarterly review is scheduled for January 15, 2024 at 10:30 AM " +
		"with a budget of $250,000.00 approved by Acme Corp."
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Extract(text); err != nil {
			b.Fatal(err)
		}
	}
}
