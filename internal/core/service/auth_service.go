package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

// RefreshTokenStore abstracts the refresh token store (Redis). Tokens are
// opaque and expire server-side; a token absent from the store is invalid
// regardless of age.
type RefreshTokenStore interface {
	Save(ctx context.Context, token, tenantID, userID string, ttl time.Duration) error
	// Lookup resolves a token to its tenant and user. found is false for
	// unknown or expired tokens.
	Lookup(ctx context.Context, token string) (tenantID, userID string, found bool, err error)
}

// AuthService implements login and access-token refresh.
type AuthService struct {
	users      ports.UserRepository
	tokens     RefreshTokenStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens RefreshTokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Login verifies credentials and issues an access token plus an opaque
// refresh token. The classified role is baked into the access token so the
// transport layer can gate routes without a directory lookup per request.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.TenantID, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	refreshToken := newRefreshToken()
	if err := s.tokens.Save(ctx, refreshToken, user.TenantID, user.ID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("login: store refresh token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("tenant_id", user.TenantID).Msg("user logged in")
	return &ports.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a stored refresh token for a fresh access token. The
// user is re-read so a deactivated account or changed position takes effect
// immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidCredentials
	}

	tenantID, userID, found, err := s.tokens.Lookup(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if !found {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil || !user.IsActive {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateAccessToken(user)
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
		"role":      user.Role().String(),
		"email":     user.Email,
		"exp":       time.Now().Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newRefreshToken returns 32 bytes of hex-encoded randomness.
func newRefreshToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-derived nonce, still unique within a TTL window
		return fmt.Sprintf("rt-%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
