// Package handler implements the HTTP handlers for the analysis API. Each
// handler decodes the request, delegates to the analyzer service, and
// renders JSON or a download artifact.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/textlens/text-analysis-platform/internal/analyzer"
	"github.com/textlens/text-analysis-platform/internal/export"
	"github.com/textlens/text-analysis-platform/internal/session"
	"github.com/textlens/text-analysis-platform/pkg/config"
	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
	"github.com/textlens/text-analysis-platform/pkg/logger"
)

const sessionIDHeader = "X-Session-ID"

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	service  *analyzer.Service
	sessions *session.Store
	cfg      config.AnalysisConfig
	logger   *slog.Logger
}

// New creates a Handler.
func New(service *analyzer.Service, sessions *session.Store, cfg config.AnalysisConfig) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		cfg:      cfg,
		logger:   slog.Default().With("component", "api-handler"),
	}
}

// decode reads a JSON request body into dst, enforcing the configured
// maximum body size.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.cfg.MaxTextBytes))
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Newf(apperrors.ErrInvalidInput, "decoding request body: %v", err)
	}
	return nil
}

// readText extracts the input document from a request. JSON bodies use the
// "text" field; text/plain bodies (file uploads) are read raw. Any other
// content type is rejected.
func (h *Handler) readText(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType := r.Header.Get("Content-Type")
	if mediaType != "" {
		if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
			mediaType = parsed
		}
	}

	if mediaType == "text/plain" {
		if err := export.ValidateUpload(r.Header.Get("Content-Type")); err != nil {
			return "", err
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(h.cfg.MaxTextBytes)))
		if err != nil {
			return "", apperrors.Newf(apperrors.ErrInvalidInput, "reading body: %v", err)
		}
		return string(body), nil
	}

	if mediaType == "" || mediaType == "application/json" {
		var req struct {
			Text string `json:"text"`
		}
		if err := h.decode(w, r, &req); err != nil {
			return "", err
		}
		return req.Text, nil
	}

	return "", apperrors.Newf(apperrors.ErrUnsupportedMedia,
		"unsupported content type %q", r.Header.Get("Content-Type"))
}

// sessionID returns the client-supplied session identifier, if any.
func sessionID(r *http.Request) string {
	return r.Header.Get(sessionIDHeader)
}

// wantsDownload reports whether the client asked for a file artifact.
func wantsDownload(r *http.Request) bool {
	return r.URL.Query().Get("format") == "download"
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeArtifact(w http.ResponseWriter, artifact export.Artifact) {
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	if _, err := w.Write(artifact.Data); err != nil {
		h.logger.Error("failed to write artifact", "filename", artifact.Filename, "error", err)
	}
}

// writeError maps an error onto its HTTP status and writes a JSON error
// body. AppError messages are surfaced; everything else gets a generic
// message to avoid leaking internals.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatusCode(err)
	message := "internal error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			"path", r.URL.Path,
			"error", err,
		)
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}

// batchTexts validates a batch request's size against the configured cap.
func (h *Handler) batchTexts(texts []string) error {
	if len(texts) > h.cfg.MaxBatchSize {
		return apperrors.Newf(apperrors.ErrInvalidInput,
			"batch size %d exceeds maximum %d", len(texts), h.cfg.MaxBatchSize)
	}
	return nil
}
