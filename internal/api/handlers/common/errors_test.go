package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Feedline/internal/core/apperr"
)

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindValidation, http.StatusUnprocessableEntity},
		{apperr.KindNotAuthenticated, http.StatusUnauthorized},
		{apperr.KindNotAuthorized, http.StatusForbidden},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindConflict, http.StatusConflict},
		{apperr.KindUnavailable, http.StatusInternalServerError},
		{apperr.KindUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusForKind(tc.kind); got != tc.want {
			t.Errorf("StatusForKind(%v) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestWriteError_ValidationCarriesViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperr.Validation(
		apperr.Violation{Field: "title", Message: "title must be at least 5 characters long"},
	))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var body struct {
		Error      string             `json:"error"`
		Message    string             `json:"message"`
		Violations []apperr.Violation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error != "ValidationFailed" {
		t.Errorf("error name = %q", body.Error)
	}
	if len(body.Violations) != 1 || body.Violations[0].Field != "title" {
		t.Errorf("unexpected violations: %+v", body.Violations)
	}
}

func TestWriteError_UntaggedErrorDoesNotLeakDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: connection refused on 10.0.0.5"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error != "InternalServerError" {
		t.Errorf("error name = %q", body.Error)
	}
	if body.Message != "an internal error occurred" {
		t.Errorf("message leaked: %q", body.Message)
	}
}

func TestWriteError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperr.New(apperr.KindNotFound, "post not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "post not found" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestWriteJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"message": "created"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}
