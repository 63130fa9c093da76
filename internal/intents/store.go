// Package intents manages the admin-configured chatbot intent catalog. The
// catalog is a single JSON array in Redis; intents are independent of the
// pricing and checkout flows.
package intents

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
	"insurance-api/internal/storage"
)

type Store struct {
	redis  *redis.Client
	logger logger.Logger
}

func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		redis:  client,
		logger: log.WithFields(map[string]interface{}{"component": "intents"}),
	}
}

// List returns all intents, newest first.
func (s *Store) List(ctx context.Context) ([]models.Intent, error) {
	return s.load(ctx)
}

// Get returns a single intent by id.
func (s *Store) Get(ctx context.Context, id string) (*models.Intent, error) {
	intents, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range intents {
		if intents[i].ID == id {
			return &intents[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError(apperrors.ErrCodeIntentNotFound, id)
}

// Create assigns an id and creation time and prepends the intent.
func (s *Store) Create(ctx context.Context, intent models.Intent) (*models.Intent, error) {
	intents, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	intent.ID = uuid.New().String()
	intent.CreatedAt = time.Now()
	intent.Triggers = cleanTriggers(intent.Triggers)

	intents = append([]models.Intent{intent}, intents...)
	if err := s.save(ctx, intents); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Update merges the provided fields into the stored intent. Zero-value
// fields in the patch leave the stored value untouched; Enabled is managed
// through Toggle.
func (s *Store) Update(ctx context.Context, id string, patch models.Intent) (*models.Intent, error) {
	intents, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range intents {
		if intents[i].ID != id {
			continue
		}
		if patch.Name != "" {
			intents[i].Name = patch.Name
		}
		if patch.Triggers != nil {
			intents[i].Triggers = cleanTriggers(patch.Triggers)
		}
		if patch.QuickReplies != nil {
			intents[i].QuickReplies = patch.QuickReplies
		}
		if patch.Notes != "" {
			intents[i].Notes = patch.Notes
		}
		if err := s.save(ctx, intents); err != nil {
			return nil, err
		}
		return &intents[i], nil
	}
	return nil, apperrors.NewNotFoundError(apperrors.ErrCodeIntentNotFound, id)
}

// Duplicate copies an intent under a fresh id with a " (copy)" name suffix.
func (s *Store) Duplicate(ctx context.Context, id string) (*models.Intent, error) {
	intents, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range intents {
		if intents[i].ID != id {
			continue
		}
		copied := intents[i]
		copied.ID = uuid.New().String()
		copied.Name = copied.Name + " (copy)"
		copied.CreatedAt = time.Now()
		copied.Triggers = append([]string(nil), intents[i].Triggers...)
		copied.QuickReplies = append([]models.QuickReply(nil), intents[i].QuickReplies...)

		intents = append([]models.Intent{copied}, intents...)
		if err := s.save(ctx, intents); err != nil {
			return nil, err
		}
		return &copied, nil
	}
	return nil, apperrors.NewNotFoundError(apperrors.ErrCodeIntentNotFound, id)
}

// Toggle flips the enabled flag.
func (s *Store) Toggle(ctx context.Context, id string) (*models.Intent, error) {
	intents, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range intents {
		if intents[i].ID != id {
			continue
		}
		intents[i].Enabled = !intents[i].Enabled
		if err := s.save(ctx, intents); err != nil {
			return nil, err
		}
		return &intents[i], nil
	}
	return nil, apperrors.NewNotFoundError(apperrors.ErrCodeIntentNotFound, id)
}

// Delete removes an intent by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	intents, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range intents {
		if intents[i].ID == id {
			intents = append(intents[:i], intents[i+1:]...)
			return s.save(ctx, intents)
		}
	}
	return apperrors.NewNotFoundError(apperrors.ErrCodeIntentNotFound, id)
}

// Import prepends the given intents to the catalog. Imported intents keep
// their ids when present and get fresh ones otherwise.
func (s *Store) Import(ctx context.Context, incoming []models.Intent) ([]models.Intent, error) {
	intents, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range incoming {
		if incoming[i].ID == "" {
			incoming[i].ID = uuid.New().String()
		}
		if incoming[i].CreatedAt.IsZero() {
			incoming[i].CreatedAt = time.Now()
		}
		incoming[i].Triggers = cleanTriggers(incoming[i].Triggers)
	}

	merged := append(append([]models.Intent(nil), incoming...), intents...)
	if err := s.save(ctx, merged); err != nil {
		return nil, err
	}
	s.logger.Info("intents imported", map[string]interface{}{"count": len(incoming)})
	return merged, nil
}

// Export returns one intent when id is set, otherwise the whole catalog.
func (s *Store) Export(ctx context.Context, id string) ([]models.Intent, error) {
	if id == "" {
		return s.load(ctx)
	}
	intent, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return []models.Intent{*intent}, nil
}

func (s *Store) load(ctx context.Context) ([]models.Intent, error) {
	data, err := s.redis.Get(ctx, storage.KeyIntents).Bytes()
	if err == redis.Nil {
		return []models.Intent{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageUnavailableError("load intents", err)
	}

	var intents []models.Intent
	if err := json.Unmarshal(data, &intents); err != nil {
		s.logger.Warn("stored intents unreadable, resetting", map[string]interface{}{
			"error": err.Error(),
		})
		return []models.Intent{}, nil
	}
	return intents, nil
}

func (s *Store) save(ctx context.Context, intents []models.Intent) error {
	data, err := json.Marshal(intents)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.redis.Set(ctx, storage.KeyIntents, data, 0).Err(); err != nil {
		return apperrors.NewStorageUnavailableError("save intents", err)
	}
	return nil
}

func cleanTriggers(triggers []string) []string {
	cleaned := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		trigger = strings.TrimSpace(trigger)
		if trigger != "" {
			cleaned = append(cleaned, trigger)
		}
	}
	return cleaned
}
