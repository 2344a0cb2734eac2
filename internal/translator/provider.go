// Package translator wraps an external machine-translation service:
// language detection, single and batch translation, and multi-target
// fan-out. Provider calls are guarded by a circuit breaker with retry.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/pkg/config"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
	"github.com/textlens/text-analysis-platform/pkg/resilience"
)

// Provider is the external translation backend.
type Provider interface {
	// Translate renders text from source into target. Source "auto" asks
	// the backend to detect the language itself.
	Translate(ctx context.Context, text, source, target string) (string, error)
	// Detect identifies the language of text, returning its code and the
	// backend's confidence in [0,1].
	Detect(ctx context.Context, text string) (string, float64, error)
}

// HTTPProvider talks to a LibreTranslate-compatible endpoint.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *resilience.Breaker
	retry   resilience.RetryConfig
	logger  *slog.Logger
}

// NewHTTPProvider creates an HTTPProvider from config.
func NewHTTPProvider(cfg config.TranslatorConfig) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		breaker: resilience.NewBreaker("translator", resilience.BreakerConfig{}),
		retry:   resilience.RetryConfig{MaxAttempts: 3, InitialDelay: 200 * time.Millisecond},
		logger:  slog.Default().With("component", "translator-provider"),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type detectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type detectCandidate struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Translate implements Provider against POST /translate.
func (p *HTTPProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	var resp translateResponse
	err := p.call(ctx, "/translate", translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: p.apiKey,
	}, &resp)
	if err != nil {
		return "", apperrors.Newf(apperrors.ErrTranslationFailure, "provider call: %v", err)
	}
	return resp.TranslatedText, nil
}

// Detect implements Provider against POST /detect. The backend returns
// candidates ordered by confidence; the first wins.
func (p *HTTPProvider) Detect(ctx context.Context, text string) (string, float64, error) {
	var candidates []detectCandidate
	err := p.call(ctx, "/detect", detectRequest{Q: text, APIKey: p.apiKey}, &candidates)
	if err != nil {
		return "", 0, apperrors.Newf(apperrors.ErrDetectionFailure, "provider call: %v", err)
	}
	if len(candidates) == 0 {
		return "", 0, apperrors.New(apperrors.ErrDetectionFailure, "provider returned no candidates")
	}
	// Provider confidences are percentages.
	return candidates[0].Language, candidates[0].Confidence / 100, nil
}

func (p *HTTPProvider) call(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	return p.breaker.Execute(func() error {
		return resilience.Retry(ctx, "translator"+path, p.retry, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				p.logger.Warn("provider returned non-200",
					"path", path,
					"status", resp.StatusCode,
				)
				return fmt.Errorf("provider status %d: %s", resp.StatusCode, msg)
			}
			return json.NewDecoder(resp.Body).Decode(out)
		})
	})
}
