package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore keeps opaque refresh tokens in Redis with a TTL.
// Key format: refresh:<token> → "<tenant_id>:<user_id>"
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a RefreshTokenStore wrapping the given client.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save records a refresh token for the user; it expires after ttl.
func (s *RefreshTokenStore) Save(ctx context.Context, token, tenantID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(token), tenantID+":"+userID, ttl).Err()
}

// Lookup resolves a token to its tenant and user. Unknown or expired tokens
// return found=false without error.
func (s *RefreshTokenStore) Lookup(ctx context.Context, token string) (string, string, bool, error) {
	v, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("refresh token lookup: %w", err)
	}

	tenantID, userID, ok := strings.Cut(v, ":")
	if !ok {
		return "", "", false, fmt.Errorf("refresh token lookup: malformed entry")
	}
	return tenantID, userID, true, nil
}

func (s *RefreshTokenStore) key(token string) string {
	return "refresh:" + token
}
