package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vidstream/api/internal/core/domain"
)

// apiResponse is the uniform envelope for every success and failure body.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{StatusCode: status, Message: message, Data: data}); err != nil {
		log.Printf("[http] Failed to encode response: %v", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Unrecognized
// errors become opaque 500s so internals never leak into response bodies.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrUserAlreadyExists):
		writeJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenSuperseded),
		errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		log.Printf("[http] Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, domain.ErrInternal.Error(), nil)
	}
}
