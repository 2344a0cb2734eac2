package handler

import (
	"net/http"
	"time"
)

// GenerateStory handles POST /api/v1/generate/story.
func (h *Handler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme  string `json:"theme"`
		Length string `json:"length"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result := h.service.Generator.Story(req.Theme, req.Length)
	h.service.Observe(r.Context(), "generate", "story", len(req.Theme), start, false, nil)
	h.sessions.Touch(sessionID(r), "generate")
	h.writeJSON(w, http.StatusOK, result)
}

// GenerateEmail handles POST /api/v1/generate/email.
func (h *Handler) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Style     string `json:"style"`
		Purpose   string `json:"purpose"`
		Recipient string `json:"recipient"`
		Sender    string `json:"sender"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Generator.Email(req.Style, req.Purpose, req.Recipient, req.Sender)
	h.service.Observe(r.Context(), "generate", "email", len(req.Purpose), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "generate")
	h.writeJSON(w, http.StatusOK, result)
}

// GenerateBlogPost handles POST /api/v1/generate/blog.
func (h *Handler) GenerateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string   `json:"title"`
		MainPoints []string `json:"main_points"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Generator.BlogPost(req.Title, req.MainPoints)
	h.service.Observe(r.Context(), "generate", "blog", len(req.Title), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "generate")
	h.writeJSON(w, http.StatusOK, result)
}

// ContinueText handles POST /api/v1/generate/continue.
func (h *Handler) ContinueText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string `json:"text"`
		Style string `json:"style"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	start := time.Now()
	result, err := h.service.Generator.Continue(req.Text, req.Style)
	h.service.Observe(r.Context(), "generate", "continue", len(req.Text), start, false, err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.sessions.Touch(sessionID(r), "generate")
	h.writeJSON(w, http.StatusOK, result)
}
