package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn func(ctx context.Context, refreshToken string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func newAuthContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{
				AccessToken:  "access123",
				RefreshToken: "refresh456",
				User: &domain.User{
					ID:       "u_1",
					TenantID: "tenant_1",
					Name:     "Alice",
					Email:    email,
					Position: &domain.Position{Rank: domain.RankDirector, Name: "Director", CanEvaluate: true},
				},
			}, nil
		},
	}
	h := NewAuthHandler(stub)
	c, rec := newAuthContext(t, "/v1/auth/login", `{"email":"alice@example.com","password":"secret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access123" || resp["refresh_token"] != "refresh456" {
		t.Fatalf("tokens missing from response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "director" || user["position_name"] != "Director" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if user["can_evaluate"] != true {
		t.Fatalf("can_evaluate must reflect the position capability: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPropagate(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)
	c, _ := newAuthContext(t, "/v1/auth/login", `{"email":"alice@example.com","password":"bad"}`)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to pass through, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newAuthContext(t, "/v1/auth/login", "{")

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_BadEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})
	c, _ := newAuthContext(t, "/v1/auth/login", `{"email":"not-an-email","password":"secret"}`)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, token string) (string, error) {
			if token != "refresh456" {
				t.Fatalf("unexpected token: %s", token)
			}
			return "access789", nil
		},
	}
	h := NewAuthHandler(stub)
	c, rec := newAuthContext(t, "/v1/auth/refresh", `{"refresh_token":"refresh456"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access789" {
		t.Fatalf("expected new access token, got %+v", resp)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newAuthContext(t, "/v1/auth/refresh", `{}`)

	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}
