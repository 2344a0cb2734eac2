package translator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider maps inputs to canned outputs and records calls.
type fakeProvider struct {
	translations map[string]string // key: text|source|target
	detectCode   string
	detectConf   float64
	failOn       string
	calls        int
}

func (f *fakeProvider) Translate(_ context.Context, text, source, target string) (string, error) {
	f.calls++
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return "", errors.New("provider unavailable")
	}
	if out, ok := f.translations[text+"|"+source+"|"+target]; ok {
		return out, nil
	}
	return "[" + target + "] " + text, nil
}

func (f *fakeProvider) Detect(_ context.Context, text string) (string, float64, error) {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return "", 0, errors.New("provider unavailable")
	}
	return f.detectCode, f.detectConf, nil
}

func newService(p *fakeProvider) *Service {
	if p.detectCode == "" {
		p.detectCode = "en"
		p.detectConf = 0.95
	}
	return NewService(p)
}

func TestDetect(t *testing.T) {
	s := newService(&fakeProvider{detectCode: "es", detectConf: 0.88})
	got, err := s.Detect(context.Background(), "Hola, como estas?")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got.LanguageCode != "es" || got.LanguageName != "Spanish" {
		t.Errorf("detection = %s/%s, want es/Spanish", got.LanguageCode, got.LanguageName)
	}
	if got.Confidence != 0.88 {
		t.Errorf("Confidence = %v, want 0.88", got.Confidence)
	}
}

func TestDetectTooShort(t *testing.T) {
	s := newService(&fakeProvider{})
	for _, text := range []string{"", "ab", " a "} {
		if _, err := s.Detect(context.Background(), text); err == nil {
			t.Errorf("Detect(%q) succeeded, want error", text)
		}
	}
}

func TestTranslateAutoDetectsSource(t *testing.T) {
	s := newService(&fakeProvider{detectCode: "de", detectConf: 0.9})
	got, err := s.Translate(context.Background(), "Guten Tag", "en", "auto")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got.SourceLanguage != "de" || got.SourceLanguageName != "German" {
		t.Errorf("source = %s/%s, want de/German", got.SourceLanguage, got.SourceLanguageName)
	}
	if got.TargetLanguageName != "English" {
		t.Errorf("TargetLanguageName = %s, want English", got.TargetLanguageName)
	}
	if got.TranslatedText == "" || got.OriginalText != "Guten Tag" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestTranslateExplicitSourceSkipsDetection(t *testing.T) {
	p := &fakeProvider{detectCode: "zz"}
	s := newService(p)
	got, err := s.Translate(context.Background(), "Bonjour tout le monde", "en", "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got.SourceLanguage != "fr" {
		t.Errorf("SourceLanguage = %s, want fr as given", got.SourceLanguage)
	}
}

func TestTranslateValidation(t *testing.T) {
	s := newService(&fakeProvider{})
	if _, err := s.Translate(context.Background(), "  ", "en", "auto"); err == nil {
		t.Error("expected error for empty text")
	}
	if _, err := s.Translate(context.Background(), "some text", "", "auto"); err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestTranslateBatchIsolatesFailures(t *testing.T) {
	s := newService(&fakeProvider{failOn: "kaput"})
	texts := []string{"first text", "", "this is kaput", "third text"}
	got, err := s.TranslateBatch(context.Background(), texts, "es", "en")
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if got.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", got.TotalCount)
	}
	if got.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2 (blank skipped, kaput failed)", got.SuccessCount)
	}
	if got.FailureCount != 1 {
		t.Fatalf("FailureCount = %d, want 1", got.FailureCount)
	}
	if got.Failed[0].Index != 3 {
		t.Errorf("failed index = %d, want 1-based position 3", got.Failed[0].Index)
	}
	if got.Successful[0].Index != 1 || got.Successful[1].Index != 4 {
		t.Errorf("successful indexes = %d,%d, want 1,4",
			got.Successful[0].Index, got.Successful[1].Index)
	}
}

func TestTranslateBatchTruncatesPreviews(t *testing.T) {
	s := newService(&fakeProvider{})
	long := strings.Repeat("word ", 40)
	got, err := s.TranslateBatch(context.Background(), []string{long}, "fr", "en")
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if !strings.HasSuffix(got.Successful[0].Original, "...") {
		t.Error("long original not truncated in preview")
	}
	if got.Successful[0].FullOriginal != long {
		t.Error("FullOriginal must keep the complete text")
	}
}

func TestTranslateBatchEmpty(t *testing.T) {
	s := newService(&fakeProvider{})
	if _, err := s.TranslateBatch(context.Background(), nil, "es", "en"); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestTranslateMulti(t *testing.T) {
	s := newService(&fakeProvider{})
	got, err := s.TranslateMulti(context.Background(), "good morning", []string{"es", "fr", "de"}, "en")
	if err != nil {
		t.Fatalf("TranslateMulti: %v", err)
	}
	if got.TargetLanguages != 3 || got.Successful != 3 {
		t.Errorf("targets/successful = %d/%d, want 3/3", got.TargetLanguages, got.Successful)
	}
	for _, code := range []string{"es", "fr", "de"} {
		entry, ok := got.Translations[code]
		if !ok {
			t.Fatalf("missing translation for %s", code)
		}
		if entry.Error != "" || entry.TranslatedText == "" {
			t.Errorf("entry for %s = %+v", code, entry)
		}
	}
	if got.Translations["es"].LanguageName != "Spanish" {
		t.Errorf("LanguageName = %s, want Spanish", got.Translations["es"].LanguageName)
	}
}

func TestTranslateMultiIsolatesFailures(t *testing.T) {
	s := newService(&fakeProvider{failOn: "kaput"})
	got, err := s.TranslateMulti(context.Background(), "all kaput here", []string{"es", "fr"}, "en")
	if err != nil {
		t.Fatalf("TranslateMulti: %v", err)
	}
	if got.Successful != 0 {
		t.Errorf("Successful = %d, want 0", got.Successful)
	}
	for code, entry := range got.Translations {
		if entry.Error == "" {
			t.Errorf("entry for %s missing error", code)
		}
	}
}

func TestTranslateMultiNoTargets(t *testing.T) {
	s := newService(&fakeProvider{})
	if _, err := s.TranslateMulti(context.Background(), "text", nil, "en"); err == nil {
		t.Error("expected error for no target languages")
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("ja"); got != "Japanese" {
		t.Errorf("LanguageName(ja) = %q", got)
	}
	if got := LanguageName("xx"); got != "Unknown" {
		t.Errorf("LanguageName(xx) = %q, want Unknown", got)
	}
}

func TestSupportedLanguagesIsCopy(t *testing.T) {
	langs := SupportedLanguages()
	langs["en"] = "mutated"
	if LanguageName("en") != "English" {
		t.Error("SupportedLanguages must return a copy")
	}
}
