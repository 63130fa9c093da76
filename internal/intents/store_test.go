package intents

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, logger.NewTestLogger(t))
}

func TestStore_CreateAndList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, models.Intent{
		Name:     "greeting",
		Triggers: []string{"hello", "  hi  ", "", "hey"},
		Enabled:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, []string{"hello", "hi", "hey"}, first.Triggers)

	second, err := store.Create(ctx, models.Intent{Name: "pricing", Enabled: true})
	require.NoError(t, err)

	intents, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, intents, 2)
	assert.Equal(t, second.ID, intents[0].ID)
	assert.Equal(t, first.ID, intents[1].ID)
}

func TestStore_List_Empty(t *testing.T) {
	store := setupStore(t)

	intents, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, intents)
}

func TestStore_Update(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Intent{
		Name:     "greeting",
		Triggers: []string{"hello"},
		Notes:    "initial",
		Enabled:  true,
	})
	require.NoError(t, err)

	t.Run("merges provided fields only", func(t *testing.T) {
		updated, err := store.Update(ctx, created.ID, models.Intent{
			Triggers: []string{"hello", "namaste"},
		})
		require.NoError(t, err)
		assert.Equal(t, "greeting", updated.Name)
		assert.Equal(t, []string{"hello", "namaste"}, updated.Triggers)
		assert.Equal(t, "initial", updated.Notes)
		assert.True(t, updated.Enabled)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		_, err := store.Update(ctx, "missing", models.Intent{Name: "x"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeIntentNotFound, apperrors.CodeOf(err))
	})
}

func TestStore_Duplicate(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	original, err := store.Create(ctx, models.Intent{
		Name:     "claims",
		Triggers: []string{"claim", "file a claim"},
		QuickReplies: []models.QuickReply{
			{ID: "qr-1", Title: "Start a claim", Payload: "CLAIM_START"},
		},
		Enabled: true,
	})
	require.NoError(t, err)

	copied, err := store.Duplicate(ctx, original.ID)
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, "claims (copy)", copied.Name)
	assert.Equal(t, original.Triggers, copied.Triggers)
	assert.Equal(t, original.QuickReplies, copied.QuickReplies)

	intents, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, intents, 2)
	assert.Equal(t, copied.ID, intents[0].ID)
}

func TestStore_Toggle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Intent{Name: "greeting", Enabled: true})
	require.NoError(t, err)

	toggled, err := store.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Enabled)

	toggled, err = store.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Enabled)
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, models.Intent{Name: "greeting"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	intents, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, intents)

	err = store.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeIntentNotFound, apperrors.CodeOf(err))
}

func TestStore_Import(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	existing, err := store.Create(ctx, models.Intent{Name: "greeting"})
	require.NoError(t, err)

	merged, err := store.Import(ctx, []models.Intent{
		{Name: "imported-a", Triggers: []string{" renew "}},
		{ID: "keep-this-id", Name: "imported-b"},
	})
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "imported-a", merged[0].Name)
	assert.NotEmpty(t, merged[0].ID)
	assert.Equal(t, []string{"renew"}, merged[0].Triggers)
	assert.Equal(t, "keep-this-id", merged[1].ID)
	assert.Equal(t, existing.ID, merged[2].ID)
}

func TestStore_Export(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, models.Intent{Name: "greeting"})
	require.NoError(t, err)
	_, err = store.Create(ctx, models.Intent{Name: "pricing"})
	require.NoError(t, err)

	t.Run("all intents", func(t *testing.T) {
		exported, err := store.Export(ctx, "")
		require.NoError(t, err)
		assert.Len(t, exported, 2)
	})

	t.Run("single intent", func(t *testing.T) {
		exported, err := store.Export(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, exported, 1)
		assert.Equal(t, "greeting", exported[0].Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Export(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeIntentNotFound, apperrors.CodeOf(err))
	})
}
