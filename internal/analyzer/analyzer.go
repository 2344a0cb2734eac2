// Package analyzer orchestrates the analysis features behind one service:
// it routes deterministic analyses through the result cache, records
// Prometheus metrics, and publishes usage events.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/textlens/text-analysis-platform/internal/analytics"
	"github.com/textlens/text-analysis-platform/internal/analyzer/cache"
	"github.com/textlens/text-analysis-platform/internal/classifier"
	"github.com/textlens/text-analysis-platform/internal/entity"
	"github.com/textlens/text-analysis-platform/internal/generator"
	"github.com/textlens/text-analysis-platform/internal/qa"
	"github.com/textlens/text-analysis-platform/internal/sentiment"
	"github.com/textlens/text-analysis-platform/internal/summarizer"
	"github.com/textlens/text-analysis-platform/internal/translator"
	"github.com/textlens/text-analysis-platform/pkg/metrics"
	"github.com/textlens/text-analysis-platform/pkg/middleware"
)

// Service bundles the analysis features. The feature fields are exposed for
// operations that bypass caching (batches, generation, translation); the
// methods below add caching and instrumentation for the deterministic
// single-document analyses.
type Service struct {
	Entities   *entity.Extractor
	Summarizer *summarizer.Summarizer
	QA         *qa.Answerer
	Sentiment  *sentiment.Analyzer
	Classifier *classifier.Classifier
	Generator  *generator.Generator
	Translator *translator.Service

	cache     *cache.ResultCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Deps carries the optional infrastructure for a Service. Any nil field
// degrades gracefully: no caching, no events, no metrics.
type Deps struct {
	Cache     *cache.ResultCache
	Collector *analytics.Collector
	Metrics   *metrics.Metrics
}

// New creates a Service.
func New(
	extractor *entity.Extractor,
	summ *summarizer.Summarizer,
	answerer *qa.Answerer,
	sent *sentiment.Analyzer,
	class *classifier.Classifier,
	gen *generator.Generator,
	trans *translator.Service,
	deps Deps,
) *Service {
	return &Service{
		Entities:   extractor,
		Summarizer: summ,
		QA:         answerer,
		Sentiment:  sent,
		Classifier: class,
		Generator:  gen,
		Translator: trans,
		cache:      deps.Cache,
		collector:  deps.Collector,
		metrics:    deps.Metrics,
		logger:     slog.Default().With("component", "analyzer"),
	}
}

// ExtractEntities runs cached entity extraction.
func (s *Service) ExtractEntities(ctx context.Context, text string) (*entity.Result, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*entity.Result](ctx, s.cache,
		cache.Key("entities", "", text),
		func() (*entity.Result, error) { return s.Entities.Extract(text) },
	)
	s.Observe(ctx, "entities", "extract", len(text), start, hit, err)
	if err == nil && s.metrics != nil {
		s.metrics.EntitiesExtracted.Observe(float64(result.TotalEntities))
	}
	return result, hit, err
}

// RelationshipAnalysis pairs extracted entities with inferred relationships.
type RelationshipAnalysis struct {
	Entities      *entity.Result             `json:"entities"`
	Relationships *entity.RelationshipResult `json:"relationship_analysis"`
}

// AnalyzeRelationships runs cached entity + relationship analysis.
func (s *Service) AnalyzeRelationships(ctx context.Context, text string) (*RelationshipAnalysis, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*RelationshipAnalysis](ctx, s.cache,
		cache.Key("relationships", "", text),
		func() (*RelationshipAnalysis, error) {
			entities, relationships, err := s.Entities.AnalyzeRelationships(text)
			if err != nil {
				return nil, err
			}
			return &RelationshipAnalysis{Entities: entities, Relationships: relationships}, nil
		},
	)
	s.Observe(ctx, "relationships", "analyze", len(text), start, hit, err)
	return result, hit, err
}

// Summarize runs cached extractive summarization.
func (s *Service) Summarize(ctx context.Context, text string, ratio float64) (*summarizer.ExtractiveResult, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*summarizer.ExtractiveResult](ctx, s.cache,
		cache.Key("summary", fmt.Sprintf("ratio=%.2f", ratio), text),
		func() (*summarizer.ExtractiveResult, error) { return s.Summarizer.Extractive(text, ratio), nil },
	)
	s.Observe(ctx, "summary", "extractive", len(text), start, hit, err)
	return result, hit, err
}

// BulletPoints runs cached bullet-point summarization.
func (s *Service) BulletPoints(ctx context.Context, text string, maxPoints int) (*summarizer.BulletResult, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*summarizer.BulletResult](ctx, s.cache,
		cache.Key("summary", fmt.Sprintf("bullets=%d", maxPoints), text),
		func() (*summarizer.BulletResult, error) { return s.Summarizer.BulletPoints(text, maxPoints), nil },
	)
	s.Observe(ctx, "summary", "bullets", len(text), start, hit, err)
	return result, hit, err
}

// Keywords runs cached keyword extraction.
func (s *Service) Keywords(ctx context.Context, text string, numKeywords int) (*summarizer.KeywordResult, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*summarizer.KeywordResult](ctx, s.cache,
		cache.Key("summary", fmt.Sprintf("keywords=%d", numKeywords), text),
		func() (*summarizer.KeywordResult, error) { return s.Summarizer.Keywords(text, numKeywords), nil },
	)
	s.Observe(ctx, "summary", "keywords", len(text), start, hit, err)
	return result, hit, err
}

// AnswerQuestion runs cached question answering.
func (s *Service) AnswerQuestion(ctx context.Context, question, doc string) (*qa.Answer, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*qa.Answer](ctx, s.cache,
		cache.Key("qa", "q="+question, doc),
		func() (*qa.Answer, error) { return s.QA.AnswerQuestion(question, doc) },
	)
	s.Observe(ctx, "qa", "answer", len(doc), start, hit, err)
	return result, hit, err
}

// AnalyzeSentiment runs cached sentiment analysis.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) (*sentiment.Result, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*sentiment.Result](ctx, s.cache,
		cache.Key("sentiment", "", text),
		func() (*sentiment.Result, error) { return s.Sentiment.Analyze(text) },
	)
	s.Observe(ctx, "sentiment", "analyze", len(text), start, hit, err)
	return result, hit, err
}

// Classify runs cached text classification.
func (s *Service) Classify(ctx context.Context, text string) (*classifier.Result, bool, error) {
	start := time.Now()
	result, hit, err := cache.GetOrCompute[*classifier.Result](ctx, s.cache,
		cache.Key("classify", "", text),
		func() (*classifier.Result, error) { return s.Classifier.Classify(text) },
	)
	s.Observe(ctx, "classify", "classify", len(text), start, hit, err)
	return result, hit, err
}

// Observe records metrics and publishes a usage event for one operation.
// Operations that bypass the cached wrappers call this directly.
func (s *Service) Observe(ctx context.Context, feature, operation string, textLen int, start time.Time, cacheHit bool, err error) {
	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}

	if s.metrics != nil {
		s.metrics.AnalysesTotal.WithLabelValues(feature, status).Inc()
		s.metrics.AnalysisLatency.WithLabelValues(feature).Observe(elapsed.Seconds())
	}
	if s.collector != nil {
		s.collector.Track(analytics.AnalysisEvent{
			Type:       analytics.EventAnalysis,
			Feature:    feature,
			Operation:  operation,
			Success:    err == nil,
			TextLength: textLen,
			LatencyMs:  elapsed.Milliseconds(),
			CacheHit:   cacheHit,
			RequestID:  middleware.GetRequestID(ctx),
			Timestamp:  time.Now().UTC(),
		})
	}
}

// ObserveTranslation publishes a usage event for one translation call.
func (s *Service) ObserveTranslation(ctx context.Context, source, target string, textLen int, start time.Time, err error) {
	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
	}

	if s.metrics != nil {
		s.metrics.TranslationsTotal.WithLabelValues(target, status).Inc()
	}
	if s.collector != nil {
		s.collector.TrackTranslation(analytics.TranslationEvent{
			Type:       analytics.EventTranslation,
			SourceLang: source,
			TargetLang: target,
			Success:    err == nil,
			TextLength: textLen,
			LatencyMs:  elapsed.Milliseconds(),
			Timestamp:  time.Now().UTC(),
		})
	}
}

// CacheStats reports cumulative cache hits and misses.
func (s *Service) CacheStats() (hits, misses int64, enabled bool) {
	if s.cache == nil {
		return 0, 0, false
	}
	hits, misses = s.cache.Stats()
	return hits, misses, true
}

// InvalidateCache drops all cached analysis results.
func (s *Service) InvalidateCache(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	deleted, err := s.cache.Invalidate(ctx)
	if err != nil {
		return deleted, err
	}
	s.logger.Info("analysis cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}
