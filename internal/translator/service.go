package translator

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// MinDetectLength is the minimum trimmed input length for detection.
const MinDetectLength = 3

const (
	batchPreviewLength  = 100
	failedPreviewLength = 50
	batchConcurrency    = 4
)

// languageNames maps supported language codes to display names.
var languageNames = map[string]string{
	"en": "English", "es": "Spanish", "fr": "French", "de": "German",
	"it": "Italian", "pt": "Portuguese", "ru": "Russian", "ja": "Japanese",
	"ko": "Korean", "zh": "Chinese", "ar": "Arabic", "hi": "Hindi",
	"nl": "Dutch", "sv": "Swedish", "da": "Danish", "no": "Norwegian",
	"fi": "Finnish", "pl": "Polish", "tr": "Turkish", "th": "Thai",
}

// LanguageName resolves a language code to its display name.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "Unknown"
}

// SupportedLanguages returns the code-to-name table.
func SupportedLanguages() map[string]string {
	out := make(map[string]string, len(languageNames))
	for code, name := range languageNames {
		out[code] = name
	}
	return out
}

// Detection is the outcome of language detection.
type Detection struct {
	LanguageCode string  `json:"language_code"`
	LanguageName string  `json:"language_name"`
	Confidence   float64 `json:"confidence"`
	TextLength   int     `json:"text_length"`
}

// Translation is the outcome of a single translation.
type Translation struct {
	TranslatedText     string `json:"translated_text"`
	SourceLanguage     string `json:"source_language"`
	SourceLanguageName string `json:"source_language_name"`
	TargetLanguage     string `json:"target_language"`
	TargetLanguageName string `json:"target_language_name"`
	OriginalText       string `json:"original_text"`
	OriginalLength     int    `json:"original_length"`
	TranslatedLength   int    `json:"translated_length"`
}

// Service exposes translation operations over a Provider.
type Service struct {
	provider Provider
}

// NewService creates a Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Detect identifies the language of text.
func (s *Service) Detect(ctx context.Context, text string) (*Detection, error) {
	if len(strings.TrimSpace(text)) < MinDetectLength {
		return nil, apperrors.Newf(apperrors.ErrInputTooShort,
			"language detection requires at least %d characters", MinDetectLength)
	}
	code, confidence, err := s.provider.Detect(ctx, text)
	if err != nil {
		return nil, err
	}
	return &Detection{
		LanguageCode: code,
		LanguageName: LanguageName(code),
		Confidence:   confidence,
		TextLength:   len(text),
	}, nil
}

// Translate renders text into the target language. Source "auto" (or empty)
// detects the language first so the response can report it.
func (s *Service) Translate(ctx context.Context, text, target, source string) (*Translation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.New(apperrors.ErrInputTooShort, "text is empty")
	}
	if target == "" {
		return nil, apperrors.New(apperrors.ErrInvalidConfig, "target language is required")
	}

	if source == "" {
		source = "auto"
	}
	resolved := source
	if source == "auto" {
		detection, err := s.Detect(ctx, text)
		if err != nil {
			return nil, err
		}
		resolved = detection.LanguageCode
	}

	translated, err := s.provider.Translate(ctx, text, source, target)
	if err != nil {
		return nil, err
	}

	return &Translation{
		TranslatedText:     translated,
		SourceLanguage:     resolved,
		SourceLanguageName: LanguageName(resolved),
		TargetLanguage:     target,
		TargetLanguageName: LanguageName(target),
		OriginalText:       text,
		OriginalLength:     len(text),
		TranslatedLength:   len(translated),
	}, nil
}

// BatchTranslation is a successful item in a batch run.
type BatchTranslation struct {
	Index          int    `json:"index"`
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	SourceLang     string `json:"source_lang"`
	FullOriginal   string `json:"full_original"`
	FullTranslated string `json:"full_translated"`
}

// FailedTranslation is a failed item in a batch run.
type FailedTranslation struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

// BatchResult aggregates a batch translation run.
type BatchResult struct {
	Successful   []BatchTranslation  `json:"successful_translations"`
	Failed       []FailedTranslation `json:"failed_translations"`
	SuccessCount int                 `json:"success_count"`
	FailureCount int                 `json:"failure_count"`
	TotalCount   int                 `json:"total_count"`
}

// TranslateBatch translates each text independently into the target
// language. Blank texts are skipped; a failure in one item is recorded and
// never aborts the others. Indexes are 1-based in input order.
func (s *Service) TranslateBatch(ctx context.Context, texts []string, target, source string) (*BatchResult, error) {
	if len(texts) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "no texts supplied")
	}

	type slot struct {
		ok      *BatchTranslation
		failure *FailedTranslation
	}
	slots := make([]slot, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	var mu sync.Mutex
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry slot
			result, err := s.Translate(ctx, text, target, source)
			if err != nil {
				entry.failure = &FailedTranslation{
					Index: i + 1,
					Text:  truncate(text, failedPreviewLength),
					Error: err.Error(),
				}
			} else {
				entry.ok = &BatchTranslation{
					Index:          i + 1,
					Original:       truncate(text, batchPreviewLength),
					Translated:     truncate(result.TranslatedText, batchPreviewLength),
					SourceLang:     result.SourceLanguageName,
					FullOriginal:   text,
					FullTranslated: result.TranslatedText,
				}
			}
			mu.Lock()
			slots[i] = entry
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{TotalCount: len(texts)}
	for _, entry := range slots {
		if entry.ok != nil {
			batch.Successful = append(batch.Successful, *entry.ok)
		}
		if entry.failure != nil {
			batch.Failed = append(batch.Failed, *entry.failure)
		}
	}
	batch.SuccessCount = len(batch.Successful)
	batch.FailureCount = len(batch.Failed)
	return batch, nil
}

// MultiTranslation is one target language's outcome in a multi-target run.
type MultiTranslation struct {
	LanguageName   string `json:"language_name"`
	TranslatedText string `json:"translated_text,omitempty"`
	Error          string `json:"error,omitempty"`
}

// MultiResult aggregates a multi-target translation.
type MultiResult struct {
	OriginalText    string                      `json:"original_text"`
	Translations    map[string]MultiTranslation `json:"translations"`
	TargetLanguages int                         `json:"target_languages"`
	Successful      int                         `json:"successful_translations"`
}

// TranslateMulti renders one text into several target languages, isolating
// per-language failures.
func (s *Service) TranslateMulti(ctx context.Context, text string, targets []string, source string) (*MultiResult, error) {
	if len(targets) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidConfig, "no target languages selected")
	}

	translations := make(map[string]MultiTranslation, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	var mu sync.Mutex
	for _, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var entry MultiTranslation
			result, err := s.Translate(ctx, text, target, source)
			if err != nil {
				entry = MultiTranslation{LanguageName: LanguageName(target), Error: err.Error()}
			} else {
				entry = MultiTranslation{
					LanguageName:   result.TargetLanguageName,
					TranslatedText: result.TranslatedText,
				}
			}
			mu.Lock()
			translations[target] = entry
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	multi := &MultiResult{
		OriginalText:    text,
		Translations:    translations,
		TargetLanguages: len(targets),
	}
	for _, t := range translations {
		if t.Error == "" {
			multi.Successful++
		}
	}
	return multi, nil
}

func truncate(text string, limit int) string {
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
