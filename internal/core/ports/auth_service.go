package ports

import (
	"context"

	"github.com/hrpulse/evaluation-system/internal/core/domain"
)

// AuthResult is returned on a successful login.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService authenticates users and issues tokens. Role-to-permission
// mapping happens here (the role claim baked into the access token); the
// workflow core only consumes the resolved identity.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
