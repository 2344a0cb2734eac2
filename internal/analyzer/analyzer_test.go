package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/textlens/text-analysis-platform/internal/classifier"
	"github.com/textlens/text-analysis-platform/internal/entity"
	"github.com/textlens/text-analysis-platform/internal/generator"
	"github.com/textlens/text-analysis-platform/internal/qa"
	"github.com/textlens/text-analysis-platform/internal/sentiment"
	"github.com/textlens/text-analysis-platform/internal/summarizer"
	"github.com/textlens/text-analysis-platform/internal/textproc"
)

func newService() *Service {
	norm := textproc.NewNormalizer()
	return New(
		entity.NewExtractor(),
		summarizer.New(norm),
		qa.New(norm, qa.DefaultTopK),
		sentiment.New(norm),
		classifier.New(),
		generator.New(),
		nil,
		Deps{},
	)
}

func TestExtractEntitiesWithoutInfrastructure(t *testing.T) {
	s := newService()
	result, hit, err := s.ExtractEntities(context.Background(),
		"Dr. Sarah Johnson works at Microsoft in New York.")
	if err != nil {
		t.Fatalf("ExtractEntities: %v", err)
	}
	if hit {
		t.Error("cacheHit = true without a cache")
	}
	if result.TotalEntities == 0 {
		t.Error("no entities extracted")
	}
}

func TestAnalyzeRelationshipsComposite(t *testing.T) {
	s := newService()
	result, _, err := s.AnalyzeRelationships(context.Background(),
		"Dr. Sarah Johnson works at Microsoft in New York City today.")
	if err != nil {
		t.Fatalf("AnalyzeRelationships: %v", err)
	}
	if result.Entities == nil || result.Relationships == nil {
		t.Fatal("composite result missing a part")
	}
	if result.Relationships.Count != len(result.Relationships.Relationships) {
		t.Error("relationship count out of sync with slice")
	}
}

func TestSummarizePassesRatioThrough(t *testing.T) {
	s := newService()
	result, _, err := s.Summarize(context.Background(), "Tiny.", 0.3)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if result.Summary != "Tiny." {
		t.Errorf("short text must pass through, got %q", result.Summary)
	}
}

func TestClassifyReportsError(t *testing.T) {
	s := newService()
	if _, _, err := s.Classify(context.Background(), "   "); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestObserveWithoutInfrastructureDoesNotPanic(t *testing.T) {
	s := newService()
	s.Observe(context.Background(), "entities", "extract", 10, time.Now(), false, nil)
	s.ObserveTranslation(context.Background(), "en", "es", 10, time.Now(), nil)
}

func TestCacheStatsDisabled(t *testing.T) {
	s := newService()
	if _, _, enabled := s.CacheStats(); enabled {
		t.Error("cache reported enabled without a cache")
	}
	deleted, err := s.InvalidateCache(context.Background())
	if err != nil || deleted != 0 {
		t.Errorf("InvalidateCache = %d, %v, want 0, nil", deleted, err)
	}
}
