package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
	"github.com/rs/zerolog/log"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("Failed to encode JSON response")
	}
}

// httpError sends a JSON error response. The clientMsg is returned to the caller.
// Optional internalDetails are logged server-side but never sent to the client.
func httpError(w http.ResponseWriter, status int, clientMsg string, internalDetails ...string) {
	if len(internalDetails) > 0 {
		log.Error().
			Int("status", status).
			Str("clientMsg", clientMsg).
			Strs("internalDetails", internalDetails).
			Msg("HTTP error with internal details")
	}
	respondJSON(w, status, errorResponse{Error: clientMsg})
}

// writeServiceError maps a prompt.Error to its HTTP status. Anything else
// is an unexpected failure and becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var pe *prompt.Error
	if errors.As(err, &pe) {
		if pe.Err != nil {
			httpError(w, pe.Kind.HTTPStatus(), pe.Message, pe.Kind.String(), pe.Err.Error())
			return
		}
		httpError(w, pe.Kind.HTTPStatus(), pe.Message)
		return
	}
	httpError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}
