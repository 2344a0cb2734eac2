package handler

import (
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/internal/export"
	"github.com/textlens/text-analysis-platform/internal/session"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// AnswerQuestion handles POST /api/v1/qa/answer.
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	answer, _, err := h.service.AnswerQuestion(r.Context(), req.Question, req.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.sessions.Touch(sessionID(r), "qa")
	h.sessions.AppendHistory(sessionID(r), session.HistoryEntry{
		Question:   req.Question,
		Answer:     answer.Answer,
		Confidence: answer.Confidence,
		AnswerType: answer.QuestionType,
		Timestamp:  time.Now().UTC(),
	})

	h.writeJSON(w, http.StatusOK, answer)
}

// AnswerMultiple handles POST /api/v1/qa/batch.
func (h *Handler) AnswerMultiple(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Questions []string `json:"questions"`
		Context   string   `json:"context"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.batchTexts(req.Questions); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.QA.AnswerMultiple(r.Context(), req.Questions, req.Context)
	h.service.Observe(r.Context(), "qa", "batch", len(req.Context), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "qa")

	if wantsDownload(r) {
		h.writeArtifact(w, export.QAResults(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// GenerateQuestions handles POST /api/v1/qa/generate.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Context      string `json:"context"`
		NumQuestions *int   `json:"num_questions,omitempty"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	numQuestions := 5
	if req.NumQuestions != nil {
		if *req.NumQuestions < 3 || *req.NumQuestions > 10 {
			h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidConfig,
				"num_questions must be between 3 and 10, got %d", *req.NumQuestions))
			return
		}
		numQuestions = *req.NumQuestions
	}

	start := time.Now()
	result, err := h.service.QA.GenerateQuestions(req.Context, numQuestions)
	h.service.Observe(r.Context(), "qa", "generate", len(req.Context), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "qa")

	if wantsDownload(r) {
		h.writeArtifact(w, export.GeneratedQuestions(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// SessionHistory handles GET /api/v1/session/{id}/history.
func (h *Handler) SessionHistory(w http.ResponseWriter, r *http.Request) {
	info, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}
