package handler

import (
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/internal/entity"
	"github.com/textlens/text-analysis-platform/internal/export"
)

func totalLen(texts []string) int {
	n := 0
	for _, t := range texts {
		n += len(t)
	}
	return n
}

// ExtractEntities handles POST /api/v1/entities.
func (h *Handler) ExtractEntities(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, _, err := h.service.ExtractEntities(r.Context(), text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "entities")

	if wantsDownload(r) {
		h.writeArtifact(w, export.Entities(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ExtractCustomEntities handles POST /api/v1/entities/custom.
func (h *Handler) ExtractCustomEntities(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string            `json:"text"`
		Patterns map[string]string `json:"patterns"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	matches, err := entity.ExtractCustom(req.Text, req.Patterns)
	h.service.Observe(r.Context(), "entities", "custom", len(req.Text), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "entities")

	if wantsDownload(r) {
		h.writeArtifact(w, export.CustomEntities(matches))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"custom_entities": matches})
}

// ExtractEntitiesBatch handles POST /api/v1/entities/batch.
func (h *Handler) ExtractEntitiesBatch(w http.ResponseWriter, r *http.Request) {
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
	result, err := h.service.Entities.ExtractBatch(r.Context(), req.Texts)
	h.service.Observe(r.Context(), "entities", "batch", totalLen(req.Texts), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "entities")

	if wantsDownload(r) {
		h.writeArtifact(w, export.BatchEntities(result))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// AnalyzeRelationships handles POST /api/v1/relationships.
func (h *Handler) AnalyzeRelationships(w http.ResponseWriter, r *http.Request) {
	text, err := h.readText(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, _, err := h.service.AnalyzeRelationships(r.Context(), text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "relationships")

	if wantsDownload(r) {
		h.writeArtifact(w, export.Relationships(result.Relationships))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
