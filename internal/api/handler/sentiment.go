package handler

import (
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/internal/export"
)

// AnalyzeSentiment handles POST /api/v1/sentiment.
func (h *Handler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, _, err := h.service.AnalyzeSentiment(r.Context(), text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "sentiment")
	h.writeJSON(w, http.StatusOK, result)
}

// CompareSentiment handles POST /api/v1/sentiment/compare.
func (h *Handler) CompareSentiment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts []string `json:"texts"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.batchTexts(req.Texts); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Sentiment.Compare(r.Context(), req.Texts)
	h.service.Observe(r.Context(), "sentiment", "compare", totalLen(req.Texts), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "sentiment")
	h.writeJSON(w, http.StatusOK, result)
}

// AnalyzeSentimentBatch handles POST /api/v1/sentiment/batch.
func (h *Handler) AnalyzeSentimentBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts []string `json:"texts"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.batchTexts(req.Texts); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Sentiment.AnalyzeBatch(r.Context(), req.Texts)
	h.service.Observe(r.Context(), "sentiment", "batch", totalLen(req.Texts), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "sentiment")

	if wantsDownload(r) {
		artifact, err := export.SentimentCSV(result)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeArtifact(w, artifact)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ClassifyText handles POST /api/v1/classify.
func (h *Handler) ClassifyText(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, _, err := h.service.Classify(r.Context(), text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "classify")
	h.writeJSON(w, http.StatusOK, result)
}
