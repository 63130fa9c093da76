package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/pricing"
)

// SaveRateTable persists the normalized uploaded rate table so it survives
// restarts.
func (s *Store) SaveRateTable(ctx context.Context, table *pricing.RateTable) error {
	data, err := json.Marshal(table)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.redis.Set(ctx, KeyRateTable, data, 0).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("save rate table", err)
	}
	return nil
}

// LoadRateTable returns the stored table, or nil when none was uploaded.
// A corrupt stored table is treated as absent so quoting falls back to the
// built-in defaults rather than failing.
func (s *Store) LoadRateTable(ctx context.Context) (*pricing.RateTable, error) {
	data, err := s.redis.Get(ctx, KeyRateTable).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageUnavailableError("load rate table", err)
	}

	var table pricing.RateTable
	if err := json.Unmarshal([]byte(data), &table); err != nil {
		s.logger.Warn("stored rate table is corrupt, ignoring", map[string]interface{}{"error": err.Error()})
		return nil, nil
	}
	if len(table.Rows) == 0 {
		return nil, nil
	}
	return &table, nil
}

// ClearRateTable removes the uploaded table, restoring default pricing.
func (s *Store) ClearRateTable(ctx context.Context) error {
	if err := s.redis.Del(ctx, KeyRateTable).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("clear rate table", err)
	}
	return nil
}
