package handler

import (
	"net/http"

	"github.com/textlens/text-analysis-platform/internal/export"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// Summarize handles POST /api/v1/summary.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string   `json:"text"`
		Ratio *float64 `json:"ratio,omitempty"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ratio := h.cfg.SummaryRatio
	if req.Ratio != nil {
		if *req.Ratio < 0.1 || *req.Ratio > 0.8 {
			h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidConfig,
				"ratio must be between 0.1 and 0.8, got %v", *req.Ratio))
			return
		}
		ratio = *req.Ratio
	}

	result, _, err := h.service.Summarize(r.Context(), req.Text, ratio)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "summary")

	if wantsDownload(r) {
		h.writeArtifact(w, export.Summary(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// BulletPoints handles POST /api/v1/summary/bullets.
func (h *Handler) BulletPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		MaxPoints *int   `json:"max_points,omitempty"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	maxPoints := h.cfg.MaxBulletPoints
	if req.MaxPoints != nil {
		if *req.MaxPoints < 3 || *req.MaxPoints > 10 {
			h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidConfig,
				"max_points must be between 3 and 10, got %d", *req.MaxPoints))
			return
		}
		maxPoints = *req.MaxPoints
	}

	result, _, err := h.service.BulletPoints(r.Context(), req.Text, maxPoints)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "summary")

	if wantsDownload(r) {
		h.writeArtifact(w, export.Bullets(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Keywords handles POST /api/v1/summary/keywords.
func (h *Handler) Keywords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text        string `json:"text"`
		NumKeywords *int   `json:"num_keywords,omitempty"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	numKeywords := h.cfg.NumKeywords
	if req.NumKeywords != nil {
		if *req.NumKeywords < 5 || *req.NumKeywords > 20 {
			h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidConfig,
				"num_keywords must be between 5 and 20, got %d", *req.NumKeywords))
			return
		}
		numKeywords = *req.NumKeywords
	}

	result, _, err := h.service.Keywords(r.Context(), req.Text, numKeywords)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "summary")

	if wantsDownload(r) {
		h.writeArtifact(w, export.Keywords(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
