package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/textlens/text-analysis-platform/internal/analyzer"
	"github.com/textlens/text-analysis-platform/internal/classifier"
	"github.com/textlens/text-analysis-platform/internal/entity"
	"github.com/textlens/text-analysis-platform/internal/generator"
	"github.com/textlens/text-analysis-platform/internal/qa"
	"github.com/textlens/text-analysis-platform/internal/sentiment"
	"github.com/textlens/text-analysis-platform/internal/session"
	"github.com/textlens/text-analysis-platform/internal/summarizer"
	"github.com/textlens/text-analysis-platform/internal/textproc"
	"github.com/textlens/text-analysis-platform/pkg/config"
)

func newTestHandler() *Handler {
	norm := textproc.NewNormalizer()
	service := analyzer.New(
		entity.NewExtractor(),
		summarizer.New(norm),
		qa.New(norm, qa.DefaultTopK),
		sentiment.New(norm),
		classifier.New(),
		generator.NewSeeded(1),
		nil,
		analyzer.Deps{},
	)
	return New(service, session.NewStore(), config.AnalysisConfig{
		SummaryRatio:    0.3,
		MaxBulletPoints: 5,
		NumKeywords:     10,
		TopKSentences:   3,
		MaxBatchSize:    3,
		MaxTextBytes:    1 << 20,
	})
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestExtractEntitiesJSON(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.ExtractEntities, "/api/v1/entities",
		`{"text": "Dr. Sarah Johnson works at Microsoft in New York."}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result entity.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.TotalEntities == 0 {
		t.Error("no entities in response")
	}
}

func TestExtractEntitiesPlainTextUpload(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities",
		strings.NewReader("Dr. Sarah Johnson works at Microsoft in New York."))
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ExtractEntities(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestExtractEntitiesUnsupportedMedia(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", strings.NewReader("%PDF-1.4"))
	req.Header.Set("Content-Type", "application/pdf")
	rec := httptest.NewRecorder()
	h.ExtractEntities(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestExtractEntitiesTooShort(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.ExtractEntities, "/api/v1/entities", `{"text": "hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSummarizeRatioOutOfRange(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Summarize, "/api/v1/summary", `{"text": "Some text.", "ratio": 0.95}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBatchSizeCap(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.ExtractEntitiesBatch, "/api/v1/entities/batch",
		`{"texts": ["one text here", "two text here", "three text here", "four text here"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for batch over cap", rec.Code)
	}
}

func TestAnswerQuestionRecordsHistory(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qa/answer", strings.NewReader(
		`{"question": "When was Einstein born?", "context": "Albert Einstein was born in 1879 in Germany. He developed the theory of relativity."}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()
	h.AnswerQuestion(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	histReq := httptest.NewRequest(http.MethodGet, "/api/v1/session/sess-1/history", nil)
	histReq.SetPathValue("id", "sess-1")
	histRec := httptest.NewRecorder()
	h.SessionHistory(histRec, histReq)

	if histRec.Code != http.StatusOK {
		t.Fatalf("history status = %d", histRec.Code)
	}
	var info session.Info
	if err := json.Unmarshal(histRec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(info.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(info.History))
	}
	if info.History[0].Question != "When was Einstein born?" {
		t.Errorf("recorded question = %q", info.History[0].Question)
	}
	if info.FeatureCounts["qa"] != 1 {
		t.Errorf("qa count = %d, want 1", info.FeatureCounts["qa"])
	}
}

func TestSessionHistoryUnknown(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/ghost/history", nil)
	req.SetPathValue("id", "ghost")
	rec := httptest.NewRecorder()
	h.SessionHistory(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSentimentBatchDownloadIsCSV(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.AnalyzeSentimentBatch, "/api/v1/sentiment/batch?format=download",
		`{"texts": ["I love this product!", "This is terrible."]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Errorf("content type = %q, want text/csv", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "sentiment_analysis_results.csv") {
		t.Errorf("disposition = %q", got)
	}
}

func TestTranslateWithoutBackend(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Translate, "/api/v1/translate",
		`{"text": "hello", "target_lang": "es"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 without backend", rec.Code)
	}
}

func TestGenerateStoryDeterministicWithSeed(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.GenerateStory, "/api/v1/generate/story",
		`{"theme": "adventure", "length": "short"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result generator.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.GeneratedText == "" {
		t.Error("empty generated story")
	}
}
