package generator

import (
	"strings"
	"testing"
)

func TestStoryShort(t *testing.T) {
	g := NewSeeded(1)
	got := g.Story("", "short")
	if got.Type != "story" {
		t.Errorf("Type = %q, want story", got.Type)
	}
	if got.GeneratedText == "" {
		t.Fatal("empty story")
	}
	if strings.Contains(got.GeneratedText, "%") {
		t.Errorf("unfilled template placeholder in %q", got.GeneratedText)
	}
	if got.WordCount != len(strings.Fields(got.GeneratedText)) {
		t.Errorf("WordCount = %d, want %d", got.WordCount, len(strings.Fields(got.GeneratedText)))
	}
	if got.CharacterCount != len(got.GeneratedText) {
		t.Errorf("CharacterCount = %d, want %d", got.CharacterCount, len(got.GeneratedText))
	}
}

func TestStoryLengths(t *testing.T) {
	short := NewSeeded(7).Story("", "short")
	medium := NewSeeded(7).Story("", "medium")
	long := NewSeeded(7).Story("", "long")

	if !strings.Contains(medium.GeneratedText, "This led to") {
		t.Errorf("medium story missing consequence: %q", medium.GeneratedText)
	}
	if !strings.Contains(long.GeneratedText, "Eventually, they") {
		t.Errorf("long story missing resolution: %q", long.GeneratedText)
	}
	if len(long.GeneratedText) <= len(medium.GeneratedText) || len(medium.GeneratedText) <= len(short.GeneratedText) {
		t.Errorf("lengths not increasing: %d/%d/%d",
			len(short.GeneratedText), len(medium.GeneratedText), len(long.GeneratedText))
	}
}

func TestStoryThemePrefix(t *testing.T) {
	got := NewSeeded(2).Story("friendship", "short")
	if !strings.HasPrefix(got.GeneratedText, "[Theme: friendship] ") {
		t.Errorf("story = %q, want theme prefix", got.GeneratedText)
	}
}

func TestStoryDeterministicWithSeed(t *testing.T) {
	a := NewSeeded(42).Story("", "long")
	b := NewSeeded(42).Story("", "long")
	if a.GeneratedText != b.GeneratedText {
		t.Error("same seed produced different stories")
	}
}

func TestEmailStyles(t *testing.T) {
	tests := []struct {
		style    string
		wantSig  string
		wantOpen string
	}{
		{"professional", "Best regards,", "Dear"},
		{"casual", "Talk soon,", "Hi"},
		{"formal", "Sincerely,", "Dear"},
		{"unknown-style", "Best regards,", "Dear"}, // falls back to professional
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			g := NewSeeded(1)
			got, err := g.Email(tt.style, "discuss the roadmap", "Alice", "Bob")
			if err != nil {
				t.Fatalf("Email: %v", err)
			}
			if !strings.Contains(got.GeneratedText, tt.wantSig) {
				t.Errorf("email missing %q:\n%s", tt.wantSig, got.GeneratedText)
			}
			if !strings.HasPrefix(got.GeneratedText, tt.wantOpen) {
				t.Errorf("email does not open with %q:\n%s", tt.wantOpen, got.GeneratedText)
			}
			if !strings.Contains(got.GeneratedText, "Alice") || !strings.Contains(got.GeneratedText, "Bob") {
				t.Error("email missing recipient or sender")
			}
		})
	}
}

func TestEmailPurposeDetails(t *testing.T) {
	g := NewSeeded(1)

	tests := []struct {
		purpose string
		want    string
	}{
		{"schedule a meeting about budget", "schedule a meeting"},
		{"follow up on the invoice", "follow up on our previous conversation"},
		{"thank you for your help", "sincere gratitude"},
		{"share the quarterly numbers", "look forward to your response"},
	}
	for _, tt := range tests {
		got, err := g.Email("professional", tt.purpose, "", "")
		if err != nil {
			t.Fatalf("Email: %v", err)
		}
		if !strings.Contains(got.GeneratedText, tt.want) {
			t.Errorf("purpose %q: email missing %q", tt.purpose, tt.want)
		}
	}
}

func TestEmailDefaults(t *testing.T) {
	g := NewSeeded(1)
	got, err := g.Email("professional", "check in", "", "")
	if err != nil {
		t.Fatalf("Email: %v", err)
	}
	if !strings.Contains(got.GeneratedText, "Recipient") || !strings.Contains(got.GeneratedText, "Sender") {
		t.Error("email missing default recipient/sender placeholders")
	}
}

func TestEmailRequiresPurpose(t *testing.T) {
	g := NewSeeded(1)
	if _, err := g.Email("professional", "  ", "A", "B"); err == nil {
		t.Error("expected error for blank purpose")
	}
}

func TestBlogPost(t *testing.T) {
	g := NewSeeded(1)
	got, err := g.BlogPost("Remote Work", []string{"Flexibility", "Communication"})
	if err != nil {
		t.Fatalf("BlogPost: %v", err)
	}
	if got.Type != "blog_post" {
		t.Errorf("Type = %q, want blog_post", got.Type)
	}
	if !strings.HasPrefix(got.GeneratedText, "# Remote Work") {
		t.Errorf("post missing title heading:\n%s", got.GeneratedText)
	}
	if !strings.Contains(got.GeneratedText, "### Flexibility") ||
		!strings.Contains(got.GeneratedText, "### Communication") {
		t.Error("post missing main point sections")
	}
}

func TestBlogPostPadsTakeaways(t *testing.T) {
	// Template choice is seed-dependent; find a seed that picks the
	// takeaway variant and confirm padding.
	for seed := int64(0); seed < 20; seed++ {
		got, err := NewSeeded(seed).BlogPost("Testing", []string{"Only point"})
		if err != nil {
			t.Fatalf("BlogPost: %v", err)
		}
		if strings.Contains(got.GeneratedText, "Key Takeaways") {
			if strings.Count(got.GeneratedText, "Consider the broader implications") != 2 {
				t.Errorf("takeaways not padded to three:\n%s", got.GeneratedText)
			}
			return
		}
	}
	t.Skip("no seed under 20 selected the takeaway template")
}

func TestBlogPostValidation(t *testing.T) {
	g := NewSeeded(1)
	if _, err := g.BlogPost("", []string{"point"}); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := g.BlogPost("Title", nil); err == nil {
		t.Error("expected error for no main points")
	}
}

func TestContinueStyles(t *testing.T) {
	input := "The experiment began at dawn."
	for _, style := range []string{"creative", "informative", "conversational", "other"} {
		t.Run(style, func(t *testing.T) {
			got, err := NewSeeded(3).Continue(input, style)
			if err != nil {
				t.Fatalf("Continue: %v", err)
			}
			if !strings.HasPrefix(got.GeneratedText, input) {
				t.Errorf("continuation does not preserve input: %q", got.GeneratedText)
			}
			if got.GeneratedText != input+got.AddedText {
				t.Error("GeneratedText is not input plus AddedText")
			}
			if got.NewLength <= got.OriginalLength {
				t.Errorf("NewLength %d not greater than OriginalLength %d", got.NewLength, got.OriginalLength)
			}
		})
	}
}

func TestContinueRequiresInput(t *testing.T) {
	if _, err := NewSeeded(1).Continue("   ", "creative"); err == nil {
		t.Error("expected error for blank input")
	}
}
