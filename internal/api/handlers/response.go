package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dom/tutoring-scheduler/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const malformedPayload = "Malformed payload"

var validate = validator.New()

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeError maps a service error to its HTTP status. Unexpected errors are
// logged and reported with fallback so internals never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeMessage(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), fallback, "error", err, "method", r.Method, "path", r.URL.Path)
		writeMessage(w, http.StatusInternalServerError, fallback)
	}
}

// decode reads a JSON body into v and validates it.
func decode(r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return false
	}
	return validate.Struct(v) == nil
}

// parseTime accepts RFC 3339 with or without fractional seconds.
func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	return id, err == nil
}
