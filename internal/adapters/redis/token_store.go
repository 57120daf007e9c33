// Package redis
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pharmtrack/internal/domain"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// TokenStore keeps logged-out tokens until their natural expiry; the key TTL
// does the cleanup.
type TokenStore struct {
	redis *redis.Client
}

func NewTokenStore(r *redis.Client) domain.TokenStore {
	return &TokenStore{redis: r}
}

func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, revokedKeyPrefix+token, 1, ttl).Err(); err != nil {
		return fmt.Errorf("token store set failed: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if err := s.redis.Get(ctx, revokedKeyPrefix+token).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("token store get failed: %w", err)
	}
	return true, nil
}
