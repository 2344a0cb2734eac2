package handler

import (
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/internal/translator"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// translatorReady guards against a deployment without a translation
// backend configured.
func (h *Handler) translatorReady(w http.ResponseWriter, r *http.Request) bool {
	if h.service.Translator == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, "translation backend not configured"))
		return false
	}
	return true
}

// Translate handles POST /api/v1/translate.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	if !h.translatorReady(w, r) {
		return
	}
	var req struct {
		Text   string `json:"text"`
		Target string `json:"target_lang"`
		Source string `json:"source_lang"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Translator.Translate(r.Context(), req.Text, req.Target, req.Source)
	h.service.ObserveTranslation(r.Context(), req.Source, req.Target, len(req.Text), start, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "translate")
	h.writeJSON(w, http.StatusOK, result)
}

// TranslateBatch handles POST /api/v1/translate/batch.
func (h *Handler) TranslateBatch(w http.ResponseWriter, r *http.Request) {
	if !h.translatorReady(w, r) {
		return
	}
	var req struct {
		Texts  []string `json:"texts"`
		Target string   `json:"target_lang"`
		Source string   `json:"source_lang"`
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
	result, err := h.service.Translator.TranslateBatch(r.Context(), req.Texts, req.Target, req.Source)
	h.service.ObserveTranslation(r.Context(), req.Source, req.Target, totalLen(req.Texts), start, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "translate")
	h.writeJSON(w, http.StatusOK, result)
}

// TranslateMulti handles POST /api/v1/translate/multi.
func (h *Handler) TranslateMulti(w http.ResponseWriter, r *http.Request) {
	if !h.translatorReady(w, r) {
		return
	}
	var req struct {
		Text    string   `json:"text"`
		Targets []string `json:"target_langs"`
		Source  string   `json:"source_lang"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Translator.TranslateMulti(r.Context(), req.Text, req.Targets, req.Source)
	h.service.ObserveTranslation(r.Context(), req.Source, "multi", len(req.Text), start, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "translate")
	h.writeJSON(w, http.StatusOK, result)
}

// DetectLanguage handles POST /api/v1/detect.
func (h *Handler) DetectLanguage(w http.ResponseWriter, r *http.Request) {
	if !h.translatorReady(w, r) {
		return
	}
	text, err := h.readText(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.service.Translator.Detect(r.Context(), text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "translate")
	h.writeJSON(w, http.StatusOK, result)
}

// SupportedLanguages handles GET /api/v1/languages.
func (h *Handler) SupportedLanguages(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"languages": translator.SupportedLanguages(),
	})
}
