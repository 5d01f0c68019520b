package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrEvaluationNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrFiscalYearNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidState, http.StatusUnprocessableEntity},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		// Services wrap sentinel errors with operation context.
		rec, _ := runErrorHandler(t, fmt.Errorf("some operation: %w", tc.err))
		if rec.Code != tc.want {
			t.Errorf("%v: want %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestErrorHandler_InvalidStateKeepsDetail(t *testing.T) {
	wrapped := fmt.Errorf("finalize evaluation: %w (current status finalized)", domain.ErrInvalidState)
	rec, body := runErrorHandler(t, wrapped)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if body["error"] != wrapped.Error() {
		t.Errorf("invalid-state responses carry the detail, got %q", body["error"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := runErrorHandler(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "missing authorization header" {
		t.Errorf("message: got %q", body["error"])
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec, body := runErrorHandler(t, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Errorf("internal details must not leak, got %q", body["error"])
	}
}
