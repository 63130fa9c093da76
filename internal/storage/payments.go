package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
)

// SavePaymentMethod prepends a masked payment summary and trims the list to
// MaxSavedPaymentMethods, newest first.
func (s *Store) SavePaymentMethod(ctx context.Context, summary models.PaymentMethodSummary) error {
	existing, err := s.ListPaymentMethods(ctx)
	if err != nil {
		return err
	}

	updated := append([]models.PaymentMethodSummary{summary}, existing...)
	if len(updated) > MaxSavedPaymentMethods {
		updated = updated[:MaxSavedPaymentMethods]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.redis.Set(ctx, KeyPaymentMethods, data, 0).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("save payment method", err)
	}
	return nil
}

// ListPaymentMethods returns the saved summaries, newest first.
func (s *Store) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethodSummary, error) {
	data, err := s.redis.Get(ctx, KeyPaymentMethods).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageUnavailableError("list payment methods", err)
	}

	var summaries []models.PaymentMethodSummary
	if err := json.Unmarshal([]byte(data), &summaries); err != nil {
		s.logger.Warn("stored payment methods are corrupt, resetting", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	return summaries, nil
}
