package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("title", "required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("service: %w", domain.ErrValidation), http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("get deal: %w", domain.ErrNotFound), http.StatusNotFound},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			handleError(rec, req, testLogger(), tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type = %q, want application/json", ct)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not json: %v", err)
			}
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handleError(rec, req, testLogger(), errors.New("pq: password authentication failed"))

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, internal detail leaked", body["error"])
	}
}

func TestPathUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/deals/"+id.String(), nil)
	req.SetPathValue("id", id.String())

	got, err := pathUUID(req, "id")
	if err != nil {
		t.Fatalf("pathUUID: %v", err)
	}
	if got != id {
		t.Errorf("id = %s, want %s", got, id)
	}

	bad := httptest.NewRequest(http.MethodGet, "/deals/nope", nil)
	bad.SetPathValue("id", "nope")

	if _, err := pathUUID(bad, "id"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("pathUUID(bad) = %v, want ErrValidation", err)
	}
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want int
	}{
		{"/deals", 7},
		{"/deals?page=3", 3},
		{"/deals?page=abc", 7},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.url, nil)
		if got := queryInt(req, "page", 7); got != tt.want {
			t.Errorf("queryInt(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestQueryCategory(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/deals", nil)
	if got := queryCategory(req); got != nil {
		t.Errorf("queryCategory() = %v, want nil", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/deals?category=GAMING", nil)
	got := queryCategory(req)
	if got == nil || *got != domain.CategoryGaming {
		t.Errorf("queryCategory() = %v, want GAMING", got)
	}
}
