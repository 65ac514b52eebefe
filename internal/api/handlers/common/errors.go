// Package common holds the response helpers shared by every handler
// package, including the single error-kind to status-code mapping used by
// both the REST and GraphQL surfaces.
package common

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"Feedline/internal/core/apperr"
)

type errorResponse struct {
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Violations []apperr.Violation `json:"data,omitempty"`
}

// StatusForKind maps a domain error kind to an HTTP status code. This is
// the one mapping table for the whole API; the GraphQL error formatter
// uses it too.
func StatusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindNotAuthenticated:
		return http.StatusUnauthorized
	case apperr.KindNotAuthorized:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError maps a service error to a JSON error response. Validation
// errors carry their full violation list; untagged errors never leak
// internal detail.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := StatusForKind(kind)

	name := kind.String()
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("unexpected error in handler", "error", err)
		name = "InternalServerError"
		message = "an internal error occurred"
	}

	WriteJSON(w, status, errorResponse{
		Error:      name,
		Message:    message,
		Violations: apperr.ViolationsOf(err),
	})
}

// WriteBadRequest reports a malformed request body or parameter.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "InvalidRequest", Message: message})
}
