// Package router wires up all API routes and applies the middleware chain
// (RequestID → Metrics → CORS → Auth → RateLimit → Timeout).
package router

import (
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/internal/analytics"
	apihandler "github.com/textlens/text-analysis-platform/internal/api/handler"
	apimw "github.com/textlens/text-analysis-platform/internal/api/middleware"
	"github.com/textlens/text-analysis-platform/internal/auth/apikey"
	"github.com/textlens/text-analysis-platform/internal/auth/ratelimit"
	"github.com/textlens/text-analysis-platform/pkg/health"
	"github.com/textlens/text-analysis-platform/pkg/metrics"
	pkgmw "github.com/textlens/text-analysis-platform/pkg/middleware"
)

// Deps carries everything the router mounts. Usage, Validator, and Limiter
// may be nil; the corresponding routes or middleware then degrade.
type Deps struct {
	Handler        *apihandler.Handler
	Admin          *apihandler.AdminHandler
	Usage          *analytics.Handler
	Health         *health.Checker
	Metrics        *metrics.Metrics
	Validator      *apikey.Validator
	Limiter        *ratelimit.Limiter
	RequestTimeout time.Duration
}

// New builds the full HTTP handler with all routes and middleware.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()
	h := d.Handler

	// Entity extraction
	mux.HandleFunc("POST /api/v1/entities", h.ExtractEntities)
	mux.HandleFunc("POST /api/v1/entities/custom", h.ExtractCustomEntities)
	mux.HandleFunc("POST /api/v1/entities/batch", h.ExtractEntitiesBatch)
	mux.HandleFunc("POST /api/v1/relationships", h.AnalyzeRelationships)

	// Summarization
	mux.HandleFunc("POST /api/v1/summary", h.Summarize)
	mux.HandleFunc("POST /api/v1/summary/bullets", h.BulletPoints)
	mux.HandleFunc("POST /api/v1/summary/keywords", h.Keywords)

	// Question answering
	mux.HandleFunc("POST /api/v1/qa/answer", h.AnswerQuestion)
	mux.HandleFunc("POST /api/v1/qa/batch", h.AnswerMultiple)
	mux.HandleFunc("POST /api/v1/qa/generate", h.GenerateQuestions)

	// Sentiment and classification
	mux.HandleFunc("POST /api/v1/sentiment", h.AnalyzeSentiment)
	mux.HandleFunc("POST /api/v1/sentiment/compare", h.CompareSentiment)
	mux.HandleFunc("POST /api/v1/sentiment/batch", h.AnalyzeSentimentBatch)
	mux.HandleFunc("POST /api/v1/classify", h.ClassifyText)

	// Text generation
	mux.HandleFunc("POST /api/v1/generate/story", h.GenerateStory)
	mux.HandleFunc("POST /api/v1/generate/email", h.GenerateEmail)
	mux.HandleFunc("POST /api/v1/generate/blog", h.GenerateBlogPost)
	mux.HandleFunc("POST /api/v1/generate/continue", h.ContinueText)

	// Translation
	mux.HandleFunc("POST /api/v1/translate", h.Translate)
	mux.HandleFunc("POST /api/v1/translate/batch", h.TranslateBatch)
	mux.HandleFunc("POST /api/v1/translate/multi", h.TranslateMulti)
	mux.HandleFunc("POST /api/v1/detect", h.DetectLanguage)
	mux.HandleFunc("GET /api/v1/languages", h.SupportedLanguages)

	// Sessions and usage
	mux.HandleFunc("GET /api/v1/session/{id}/history", h.SessionHistory)
	if d.Usage != nil {
		mux.HandleFunc("GET /api/v1/usage", d.Usage.Stats)
	}

	// Administration
	if d.Admin != nil {
		mux.HandleFunc("GET /api/v1/cache/stats", d.Admin.CacheStats)
		mux.HandleFunc("POST /api/v1/cache/invalidate", d.Admin.CacheInvalidate)
		mux.HandleFunc("POST /api/v1/admin/keys", d.Admin.CreateAPIKey)
		mux.HandleFunc("GET /api/v1/admin/keys", d.Admin.ListAPIKeys)
	}

	// Health and metrics (unauthenticated)
	mux.HandleFunc("GET /health/live", d.Health.LiveHandler())
	mux.HandleFunc("GET /health/ready", d.Health.ReadyHandler())
	mux.Handle("GET /metrics", metrics.Handler())

	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Middleware chain, applied inside-out.
	var chain http.Handler = mux
	chain = pkgmw.Timeout(timeout)(chain)
	chain = apimw.RateLimit(d.Limiter)(chain)
	chain = apimw.Auth(d.Validator)(chain)
	chain = apimw.CORS(apimw.DefaultCORSConfig())(chain)
	if d.Metrics != nil {
		chain = pkgmw.Metrics(d.Metrics)(chain)
	}
	chain = pkgmw.RequestID(chain)

	return chain
}
