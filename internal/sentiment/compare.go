package sentiment

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

const (
	comparePreviewLength = 50
	compareConcurrency   = 4
)

// Comparison is one text's summary row within a comparison.
type Comparison struct {
	TextID       string  `json:"text_id"`
	Preview      string  `json:"preview"`
	Sentiment    string  `json:"sentiment"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Confidence   float64 `json:"confidence"`
}

// CompareResult aggregates sentiment across several texts.
type CompareResult struct {
	Comparisons     []Comparison `json:"comparisons"`
	AveragePolarity float64      `json:"average_polarity"`
	MostPositive    Comparison   `json:"most_positive"`
	MostNegative    Comparison   `json:"most_negative"`
	TotalTexts      int          `json:"total_texts"`
}

// Compare analyses each text independently and ranks them by polarity.
// Invalid texts are dropped; it is an error if none remain. Ties on the
// extremes keep the earlier text.
func (a *Analyzer) Compare(ctx context.Context, texts []string) (*CompareResult, error) {
	if len(texts) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "no texts supplied")
	}

	type slot struct {
		row Comparison
		ok  bool
	}
	slots := make([]slot, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)
	var mu sync.Mutex
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := a.Analyze(text)
			if err != nil {
				return nil // invalid texts are dropped, not fatal
			}
			row := Comparison{
				TextID:       fmt.Sprintf("Text %d", i+1),
				Preview:      comparePreview(text),
				Sentiment:    result.Sentiment,
				Polarity:     result.Polarity,
				Subjectivity: result.Subjectivity,
				Confidence:   result.Confidence,
			}
			mu.Lock()
			slots[i] = slot{row: row, ok: true}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []Comparison
	for _, s := range slots {
		if s.ok {
			rows = append(rows, s.row)
		}
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "no valid texts to compare")
	}

	sum := 0.0
	mostPositive, mostNegative := rows[0], rows[0]
	for _, r := range rows {
		sum += r.Polarity
		if r.Polarity > mostPositive.Polarity {
			mostPositive = r
		}
		if r.Polarity < mostNegative.Polarity {
			mostNegative = r
		}
	}

	return &CompareResult{
		Comparisons:     rows,
		AveragePolarity: sum / float64(len(rows)),
		MostPositive:    mostPositive,
		MostNegative:    mostNegative,
		TotalTexts:      len(rows),
	}, nil
}

// BatchItem is one text's outcome within a batch analysis.
type BatchItem struct {
	TextID int     `json:"text_id"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// BatchResult aggregates a batch sentiment run.
type BatchResult struct {
	Items      []BatchItem `json:"results"`
	TotalTexts int         `json:"total_texts"`
	Succeeded  int         `json:"succeeded"`
	Failed     int         `json:"failed"`
}

// AnalyzeBatch analyses each text independently. A failure in one item is
// recorded on that item and never aborts the others. IDs are 1-based and
// results preserve input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) (*BatchResult, error) {
	if len(texts) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "no texts supplied")
	}

	items := make([]BatchItem, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)
	var mu sync.Mutex
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := BatchItem{TextID: i + 1}
			result, err := a.Analyze(text)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Result = result
			}
			mu.Lock()
			items[i] = item
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{Items: items, TotalTexts: len(items)}
	for _, item := range items {
		if item.Error == "" {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	return batch, nil
}

func comparePreview(text string) string {
	if len(text) > comparePreviewLength {
		return text[:comparePreviewLength] + "..."
	}
	return text
}
