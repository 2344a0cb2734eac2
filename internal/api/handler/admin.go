package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/textlens/text-analysis-platform/internal/auth/apikey"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// AdminHandler serves cache and API-key administration endpoints.
type AdminHandler struct {
	*Handler
	keys *apikey.Validator
}

// NewAdmin creates an AdminHandler. A nil validator disables the key
// endpoints.
func NewAdmin(h *Handler, keys *apikey.Validator) *AdminHandler {
	return &AdminHandler{Handler: h, keys: keys}
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *AdminHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	hits, misses, enabled := h.service.CacheStats()
	if !enabled {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *AdminHandler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.InvalidateCache(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "invalidated",
		"keys_deleted": deleted,
	})
}

// CreateAPIKey handles POST /api/v1/admin/keys.
func (h *AdminHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	if h.keys == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, "key storage not configured"))
		return
	}
	var req struct {
		Name      string     `json:"name"`
		RateLimit int        `json:"rate_limit"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == "" {
		h.writeError(w, r, apperrors.New(apperrors.ErrInvalidInput, "name is required"))
		return
	}
	if req.RateLimit <= 0 {
		req.RateLimit = 60
	}

	rawKey, err := h.keys.CreateKey(r.Context(), req.Name, req.RateLimit, req.ExpiresAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"api_key":    rawKey,
		"name":       req.Name,
		"rate_limit": req.RateLimit,
	})
}

// ListAPIKeys handles GET /api/v1/admin/keys.
func (h *AdminHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	if h.keys == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, "key storage not configured"))
		return
	}
	keys, err := h.keys.ListKeys(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"keys": keys})
}
