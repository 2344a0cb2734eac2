package qa

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

const (
	// minQuestionLength is the trimmed length below which a batch question
	// is skipped rather than failed.
	minQuestionLength = 3

	successConfidenceThreshold = 0.3
	multiConcurrency           = 4
)

// QuestionResult is one answered question within a batch.
type QuestionResult struct {
	QuestionID   int     `json:"question_id"`
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	Confidence   float64 `json:"confidence"`
	QuestionType string  `json:"question_type"`
}

// MultiResult aggregates a multi-question run over one context.
type MultiResult struct {
	Results           []QuestionResult `json:"qa_results"`
	TotalQuestions    int              `json:"total_questions"`
	SuccessfulAnswers int              `json:"successful_answers"`
	AverageConfidence float64          `json:"average_confidence"`
}

// AnswerMultiple answers each question independently against the same
// context. Questions of three or fewer trimmed characters are skipped; a
// failed question is recorded with zero confidence and never aborts the
// others. IDs are 1-based and results preserve input order. An answer
// counts as successful above 0.3 confidence.
func (a *Answerer) AnswerMultiple(ctx context.Context, questions []string, doc string) (*MultiResult, error) {
	if len(questions) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "no questions supplied")
	}

	type slot struct {
		result QuestionResult
		ok     bool
	}
	slots := make([]slot, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(multiConcurrency)
	var mu sync.Mutex
	for i, question := range questions {
		if len(strings.TrimSpace(question)) <= minQuestionLength {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := QuestionResult{QuestionID: i + 1, Question: question}
			answer, err := a.AnswerQuestion(question, doc)
			if err != nil {
				result.Answer = "Error: " + err.Error()
				result.Confidence = 0
				result.QuestionType = "error"
			} else {
				result.Answer = answer.Answer
				result.Confidence = answer.Confidence
				result.QuestionType = answer.QuestionType
			}
			mu.Lock()
			slots[i] = slot{result: result, ok: true}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	multi := &MultiResult{TotalQuestions: len(questions)}
	var confidenceSum float64
	for _, s := range slots {
		if !s.ok {
			continue
		}
		multi.Results = append(multi.Results, s.result)
		confidenceSum += s.result.Confidence
		if s.result.Confidence > successConfidenceThreshold {
			multi.SuccessfulAnswers++
		}
	}
	if len(multi.Results) > 0 {
		multi.AverageConfidence = confidenceSum / float64(len(multi.Results))
	}
	return multi, nil
}
