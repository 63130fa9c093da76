package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

// Store wraps the Redis client with domain-shaped accessors.
type Store struct {
	redis  *redis.Client
	logger logger.Logger
}

func NewStore(rdb *redis.Client, log logger.Logger) *Store {
	return &Store{
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"component": "storage"}),
	}
}

// SaveCart overwrites the single current-quote slot wholesale.
func (s *Store) SaveCart(ctx context.Context, cart models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.redis.Set(ctx, KeyCurrentQuote, data, 0).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("save cart", err)
	}
	return nil
}

// LoadCart returns the last saved cart, or the documented sample when nothing
// has been saved yet.
func (s *Store) LoadCart(ctx context.Context) (models.Cart, error) {
	data, err := s.redis.Get(ctx, KeyCurrentQuote).Result()
	if errors.Is(err, redis.Nil) {
		return models.SampleCart(), nil
	}
	if err != nil {
		return models.Cart{}, apperrors.NewStorageUnavailableError("load cart", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		s.logger.Warn("stored cart is corrupt, returning sample", map[string]interface{}{"error": err.Error()})
		return models.SampleCart(), nil
	}
	return cart, nil
}

// ClearCart removes the stored quote.
func (s *Store) ClearCart(ctx context.Context) error {
	if err := s.redis.Del(ctx, KeyCurrentQuote).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("clear cart", err)
	}
	return nil
}

// SaveViewPref stores the admin dashboard view preference.
func (s *Store) SaveViewPref(ctx context.Context, pref string) error {
	if err := s.redis.Set(ctx, KeyAdminViewPref, pref, 0).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("save view pref", err)
	}
	return nil
}

// LoadViewPref returns the stored preference or the given default.
func (s *Store) LoadViewPref(ctx context.Context, def string) (string, error) {
	pref, err := s.redis.Get(ctx, KeyAdminViewPref).Result()
	if errors.Is(err, redis.Nil) {
		return def, nil
	}
	if err != nil {
		return "", apperrors.NewStorageUnavailableError("load view pref", err)
	}
	return pref, nil
}
