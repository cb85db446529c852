package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promotedlogger/pkg/models"
	"promotedlogger/pkg/promoted"
	"promotedlogger/pkg/storage"
)

func TestRedisStore_GetSet(t *testing.T) {
	infra := SetupTestInfraWithOptions(t, true, false)

	ctx := context.Background()
	store := storage.NewRedisStoreFromClient(infra.RedisClient)

	_, ok, err := store.GetItem(ctx, "test:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem(ctx, "test:key", "v1"))
	value, ok, err := store.GetItem(ctx, "test:key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", value)

	require.NoError(t, store.SetItem(ctx, "test:key", "v2"))
	value, _, err = store.GetItem(ctx, "test:key")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
}

func TestUserDedup_SurvivesLoggerRestart(t *testing.T) {
	infra := SetupTestInfraWithOptions(t, true, false)

	ctx := context.Background()
	store := storage.NewRedisStoreFromClient(infra.RedisClient)
	transport := newCaptureTransport()

	newLogger := func() *promoted.EventLogger {
		return promoted.NewEventLogger(promoted.Config{
			PlatformName: "integration",
			HandleLogError: func(err error) {
				t.Fatalf("unexpected log error: %v", err)
			},
			Transport: transport,
			Store:     store,
			Logger:    createTestLogger(),
		})
	}

	user := models.User{UserID: "u-1", LogUserID: "lu-1"}

	newLogger().LogUser(ctx, user)
	require.Len(t, transport.events, 1)

	// A fresh logger instance over the same store still deduplicates, the
	// marker pair lives in Redis rather than in the logger.
	newLogger().LogUser(ctx, user)
	assert.Len(t, transport.events, 1)

	// Session rollover forces a re-emit.
	transport.session.Rotate()
	newLogger().LogUser(ctx, user)
	assert.Len(t, transport.events, 2)
}
