// Package api serves the prompt generation service over HTTP.
//
// Endpoints:
//
//	GET  /api/health          liveness check
//	GET  /api/platforms       registered target platforms
//	POST /api/generate-prompt JSON {description, platform}
//	POST /api/analyze-video   multipart: video (file), platform
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
	"github.com/nickytooth/promptcrafting-ai/internal/upload"
)

// Dispatcher is the service surface the handlers depend on.
// *prompt.Service implements it.
type Dispatcher interface {
	ListPlatforms() []platform.Summary
	GenerateFromDescription(ctx context.Context, description, platformID string) (*prompt.Result, error)
	GenerateFromVideo(ctx context.Context, video []byte, mimeType, platformID string) (*prompt.Result, error)
}

const (
	// multipartOverhead allows for the platform field and part headers on
	// top of the largest accepted video.
	multipartOverhead int64 = 1 << 20

	maxJSONBody int64 = 1 << 20

	serviceName = "promptcrafting-ai"
)

// Handler holds the API routes.
type Handler struct {
	svc Dispatcher
}

// NewHandler creates a Handler for svc.
func NewHandler(svc Dispatcher) *Handler {
	return &Handler{svc: svc}
}

// Register adds the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/platforms", h.handlePlatforms)
	mux.HandleFunc("POST /api/generate-prompt", h.handleGeneratePrompt)
	mux.HandleFunc("POST /api/analyze-video", h.handleAnalyzeVideo)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (h *Handler) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.ListPlatforms())
}

type generatePromptRequest struct {
	Description string `json:"description"`
	Platform    string `json:"platform"`
}

func (h *Handler) handleGeneratePrompt(w http.ResponseWriter, r *http.Request) {
	var req generatePromptRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.svc.GenerateFromDescription(r.Context(), req.Description, req.Platform)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalyzeVideo(w http.ResponseWriter, r *http.Request) {
	limit := upload.MaxVideoSize + multipartOverhead
	if r.ContentLength > limit {
		httpError(w, http.StatusBadRequest, upload.ErrTooLarge.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	// Everything up to the limit stays in memory; no multipart spill files.
	if err := r.ParseMultipartForm(limit); err != nil {
		if isBodyTooLarge(err) {
			httpError(w, http.StatusBadRequest, upload.ErrTooLarge.Error())
			return
		}
		httpError(w, http.StatusBadRequest, "Video file is required", err.Error())
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn().Err(err).Msg("Failed to remove multipart form files")
		}
	}()

	platformID := strings.TrimSpace(r.FormValue("platform"))

	var data []byte
	var mimeType string
	file, header, err := r.FormFile("video")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		httpError(w, http.StatusBadRequest, "Video file is required", err.Error())
		return
	default:
		defer file.Close()
		if header.Size > upload.MaxVideoSize {
			httpError(w, http.StatusBadRequest, upload.ErrTooLarge.Error())
			return
		}
		data, err = io.ReadAll(io.LimitReader(file, upload.MaxVideoSize+1))
		if err != nil {
			httpError(w, http.StatusBadRequest, "Failed to read video file", err.Error())
			return
		}
		mimeType = upload.DetectMIMEType(header.Header.Get("Content-Type"), header.Filename)
		log.Debug().
			Str("filename", header.Filename).
			Str("mime_type", mimeType).
			Int("size_bytes", len(data)).
			Msg("Video upload received")
	}

	result, err := h.svc.GenerateFromVideo(r.Context(), data, mimeType, platformID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
