package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/textlens/text-analysis-platform/pkg/kafka"
)

// UsageStats is the aggregated view served on the usage endpoint.
type UsageStats struct {
	TotalAnalyses     int64          `json:"total_analyses"`
	TotalTranslations int64          `json:"total_translations"`
	TotalFailures     int64          `json:"total_failures"`
	CacheHits         int64          `json:"cache_hits"`
	CacheMisses       int64          `json:"cache_misses"`
	AvgLatencyMs      float64        `json:"avg_latency_ms"`
	P50LatencyMs      int64          `json:"p50_latency_ms"`
	P95LatencyMs      int64          `json:"p95_latency_ms"`
	P99LatencyMs      int64          `json:"p99_latency_ms"`
	FeatureCounts     []FeatureCount `json:"feature_counts"`
	TargetLanguages   []FeatureCount `json:"target_languages"`
	RequestsPerMinute float64        `json:"requests_per_minute"`
}

// FeatureCount pairs a feature or language label with its usage count.
type FeatureCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Aggregator consumes usage events from Kafka and keeps running totals
// in memory.
type Aggregator struct {
	mu                sync.RWMutex
	totalAnalyses     atomic.Int64
	totalTranslations atomic.Int64
	totalFailures     atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	latencies         []int64
	featureCounts     map[string]int64
	targetLanguages   map[string]int64
	startTime         time.Time

	logger *slog.Logger
}

// NewAggregator creates an Aggregator. Feed it by registering
// HandleEvent(agg) as the handler of a Kafka consumer.
func NewAggregator() *Aggregator {
	return &Aggregator{
		latencies:       make([]int64, 0, 10000),
		featureCounts:   make(map[string]int64),
		targetLanguages: make(map[string]int64),
		startTime:       time.Now(),
		logger:          slog.Default().With("component", "usage-aggregator"),
	}
}

// Start begins consuming usage events from the given consumer. It blocks
// until ctx is cancelled.
func (a *Aggregator) Start(ctx context.Context, consumer *kafka.Consumer) error {
	a.logger.Info("usage aggregator starting")
	return consumer.Start(ctx)
}

// HandleEvent returns the Kafka message handler that feeds the aggregator.
// Undecodable events are logged and dropped, never retried.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[AnalysisEvent](value)
		if err == nil && event.Type == EventAnalysis {
			agg.recordAnalysisEvent(event)
			return nil
		}
		trEvent, trErr := kafka.DecodeJSON[TranslationEvent](value)
		if trErr == nil && trEvent.Type == EventTranslation {
			agg.recordTranslationEvent(trEvent)
			return nil
		}
		agg.logger.Error("failed to decode usage event", "error", err)
		return nil
	}
}

func (a *Aggregator) recordAnalysisEvent(event AnalysisEvent) {
	a.totalAnalyses.Add(1)
	if !event.Success {
		a.totalFailures.Add(1)
	}
	if event.CacheHit {
		a.cacheHits.Add(1)
	} else {
		a.cacheMisses.Add(1)
	}

	a.mu.Lock()
	a.latencies = append(a.latencies, event.LatencyMs)
	a.featureCounts[event.Feature]++
	a.mu.Unlock()
}

func (a *Aggregator) recordTranslationEvent(event TranslationEvent) {
	a.totalTranslations.Add(1)
	if !event.Success {
		a.totalFailures.Add(1)
	}

	a.mu.Lock()
	a.latencies = append(a.latencies, event.LatencyMs)
	a.targetLanguages[event.TargetLang]++
	a.mu.Unlock()
}

// Stats snapshots the current aggregated usage.
func (a *Aggregator) Stats() UsageStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := UsageStats{
		TotalAnalyses:     a.totalAnalyses.Load(),
		TotalTranslations: a.totalTranslations.Load(),
		TotalFailures:     a.totalFailures.Load(),
		CacheHits:         a.cacheHits.Load(),
		CacheMisses:       a.cacheMisses.Load(),
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMs = float64(sum) / float64(len(sorted))
		stats.P50LatencyMs = percentile(sorted, 50)
		stats.P95LatencyMs = percentile(sorted, 95)
		stats.P99LatencyMs = percentile(sorted, 99)
	}
	stats.FeatureCounts = topN(a.featureCounts, 10)
	stats.TargetLanguages = topN(a.targetLanguages, 10)
	elapsed := time.Since(a.startTime).Minutes()
	if elapsed > 0 {
		stats.RequestsPerMinute = float64(stats.TotalAnalyses+stats.TotalTranslations) / elapsed
	}

	return stats
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func topN(counts map[string]int64, n int) []FeatureCount {
	result := make([]FeatureCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, FeatureCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
