package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "insurance-api/internal/common/errors"
)

// CreateSession stores an admin session token with a TTL. The login flow is
// a demo, not production authentication; the TTL is the only hardening.
func (s *Store) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, KeySessionPrefix+token, username, ttl).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("create session", err)
	}
	return nil
}

// SessionUser resolves a token to its username. An unknown or expired token
// returns an UNAUTHORIZED error.
func (s *Store) SessionUser(ctx context.Context, token string) (string, error) {
	username, err := s.redis.Get(ctx, KeySessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.NewUnauthorizedError("unknown or expired session")
	}
	if err != nil {
		return "", apperrors.NewStorageUnavailableError("session lookup", err)
	}
	return username, nil
}

// DeleteSession invalidates a token. Deleting an unknown token is a no-op.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, KeySessionPrefix+token).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("delete session", err)
	}
	return nil
}
