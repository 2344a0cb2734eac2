package entity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

const (
	// MinTextLength is the minimum trimmed input length for extraction.
	MinTextLength = 10
	// minBatchItemLength is the per-item threshold below which a batch
	// entry is skipped rather than failed.
	minBatchItemLength = 5

	mostCommonLimit  = 10
	previewLength    = 100
	batchConcurrency = 4

	processingMethod = "combined (rule-based + statistical)"
)

// Result is the outcome of comprehensive extraction over one document.
type Result struct {
	Entities      Collection       `json:"entities"`
	TotalEntities int              `json:"total_entities"`
	EntityCounts  map[Category]int `json:"entity_counts"`
	MostCommon    []EntityCount    `json:"most_common_entities"`
	TextLength    int              `json:"text_length"`
	Method        string           `json:"processing_method"`
}

// Extractor combines rule-based and statistical extraction. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs both sources over text and merges their matches. Pattern
// matches are accepted first; chunker matches are appended only when their
// text does not case-insensitively equal an accepted entry.
func (e *Extractor) Extract(text string) (*Result, error) {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return nil, apperrors.Newf(apperrors.ErrInputTooShort,
			"entity extraction requires at least %d characters", MinTextLength)
	}

	merged := merge(extractRuleBased(text), chunk(text))

	return &Result{
		Entities:      merged,
		TotalEntities: merged.Total(),
		EntityCounts:  merged.Counts(),
		MostCommon:    mostCommon(merged, mostCommonLimit),
		TextLength:    len(text),
		Method:        processingMethod,
	}, nil
}

// merge unions the two sources per category in canonical category order.
func merge(ruleBased, chunked Collection) Collection {
	combined := make(Collection, len(Categories))
	for _, cat := range Categories {
		accepted := make([]Match, 0, len(ruleBased[cat])+len(chunked[cat]))
		seen := make(map[string]bool)
		accepted = append(accepted, ruleBased[cat]...)
		for _, m := range accepted {
			seen[strings.ToLower(m.Text)] = true
		}
		for _, m := range chunked[cat] {
			key := strings.ToLower(m.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			accepted = append(accepted, m)
		}
		combined[cat] = accepted
	}
	return combined
}

// mostCommon counts entity texts across all categories and returns the top n
// by count. Ties keep canonical traversal order.
func mostCommon(c Collection, n int) []EntityCount {
	counts := make(map[string]int)
	var order []string
	for _, cat := range Categories {
		for _, m := range c[cat] {
			if counts[m.Text] == 0 {
				order = append(order, m.Text)
			}
			counts[m.Text]++
		}
	}
	out := make([]EntityCount, 0, len(order))
	for _, text := range order {
		out = append(out, EntityCount{Text: text, Count: counts[text]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// BatchItem is the per-text outcome within a batch. Exactly one of the
// result fields or Error is meaningful.
type BatchItem struct {
	TextID        int              `json:"text_id"`
	Preview       string           `json:"text_preview"`
	TotalEntities int              `json:"total_entities"`
	EntityCounts  map[Category]int `json:"entity_counts,omitempty"`
	Entities      Collection       `json:"entities,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	Items          []BatchItem      `json:"batch_results"`
	TotalTexts     int              `json:"total_texts"`
	TotalEntities  int              `json:"total_entities"`
	AveragePerText float64          `json:"average_entities_per_text"`
	CombinedCounts map[Category]int `json:"combined_entity_counts"`
}

// ExtractBatch extracts entities from each text independently. Texts of five
// or fewer trimmed characters are skipped; a failure in one item is recorded
// on that item and never aborts the others. Item IDs are 1-based and results
// preserve input order.
func (e *Extractor) ExtractBatch(ctx context.Context, texts []string) (*BatchResult, error) {
	if len(texts) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "no texts supplied")
	}

	type slot struct {
		item BatchItem
		ok   bool
	}
	slots := make([]slot, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	var mu sync.Mutex
	for i, text := range texts {
		if len(strings.TrimSpace(text)) <= minBatchItemLength {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := BatchItem{TextID: i + 1, Preview: preview(text)}
			result, err := e.Extract(text)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.TotalEntities = result.TotalEntities
				item.EntityCounts = result.EntityCounts
				item.Entities = result.Entities
			}
			mu.Lock()
			slots[i] = slot{item: item, ok: true}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{CombinedCounts: make(map[Category]int)}
	for _, s := range slots {
		if !s.ok {
			continue
		}
		batch.Items = append(batch.Items, s.item)
		batch.TotalTexts++
		batch.TotalEntities += s.item.TotalEntities
		for cat, count := range s.item.EntityCounts {
			batch.CombinedCounts[cat] += count
		}
	}
	if batch.TotalTexts > 0 {
		batch.AveragePerText = float64(batch.TotalEntities) / float64(batch.TotalTexts)
	}
	return batch, nil
}

func preview(text string) string {
	if len(text) > previewLength {
		return text[:previewLength] + "..."
	}
	return text
}
