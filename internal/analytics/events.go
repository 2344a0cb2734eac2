package analytics

import "time"

type EventType string

const (
	EventAnalysis    EventType = "analysis"
	EventTranslation EventType = "translation"
	EventCacheHit    EventType = "cache_hit"
	EventCacheMiss   EventType = "cache_miss"
)

// AnalysisEvent records one invocation of an analysis feature.
type AnalysisEvent struct {
	Type       EventType `json:"type"`
	Feature    string    `json:"feature"`
	Operation  string    `json:"operation"`
	Success    bool      `json:"success"`
	TextLength int       `json:"text_length"`
	LatencyMs  int64     `json:"latency_ms"`
	CacheHit   bool      `json:"cache_hit"`
	SessionID  string    `json:"session_id,omitempty"`
	RequestID  string    `json:"request_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// TranslationEvent records one call to the translation provider.
type TranslationEvent struct {
	Type       EventType `json:"type"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Success    bool      `json:"success"`
	TextLength int       `json:"text_length"`
	LatencyMs  int64     `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
