package l2

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces/mock"
	"go-market-cache/internal/models"
)

func testKeyDBConfig() *config.KeyDBConfig {
	cfg := &config.KeyDBConfig{Enabled: true}
	cfg.Connection.ReadTimeout = time.Second
	cfg.Connection.SendTimeout = time.Second
	return cfg
}

func newTestCache(t *testing.T) (*KeyDBCache, *mock.MockKeyDbClient) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	return NewKeyDBCache(testKeyDBConfig(), mockClient, zap.NewNop()), mockClient
}

func TestNewKeyDBCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cfg := testKeyDBConfig()
	logger := zap.NewNop()

	cache := NewKeyDBCache(cfg, mockClient, logger)

	assert.Equal(t, mockClient, cache.client)
	assert.Equal(t, cfg, cache.config)
	assert.Equal(t, logger, cache.logger)
}

func TestKeyDBCache_Get_Success(t *testing.T) {
	cache, mockClient := newTestCache(t)

	now := time.Now().Unix()
	entry := models.CacheEntry{
		Data:      []byte("test-data"),
		CreatedAt: now - 10,
		ExpiresAt: now + 100,
	}
	entryJSON, _ := json.Marshal(entry)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult(string(entryJSON), nil))

	result, found := cache.Get(context.Background(), "test-key")

	require.True(t, found)
	assert.Equal(t, []byte("test-data"), result.Data)
}

func TestKeyDBCache_Get_NotFound(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult("", redis.Nil))

	result, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestKeyDBCache_Get_StoreError(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult("", errors.New("connection refused")))

	result, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestKeyDBCache_Get_Expired(t *testing.T) {
	cache, mockClient := newTestCache(t)

	now := time.Now().Unix()
	entry := models.CacheEntry{
		Data:      []byte("test-data"),
		CreatedAt: now - 300,
		ExpiresAt: now - 100,
	}
	entryJSON, _ := json.Marshal(entry)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult(string(entryJSON), nil))

	result, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestKeyDBCache_Get_InvalidJSON(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().Get(gomock.Any(), "test-key").Return(redis.NewStringResult("invalid-json", nil))
	mockClient.EXPECT().Del(gomock.Any(), "test-key").Return(redis.NewIntResult(1, nil))

	result, found := cache.Get(context.Background(), "test-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestKeyDBCache_Set_Success(t *testing.T) {
	cache, mockClient := newTestCache(t)

	now := time.Unix(1_700_000_000, 0)
	cache.now = func() time.Time { return now }

	mockClient.EXPECT().
		Set(gomock.Any(), "test-key", gomock.Any(), 45*time.Second).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) *redis.StatusCmd {
			var entry models.CacheEntry
			require.NoError(t, json.Unmarshal(value.([]byte), &entry))
			assert.Equal(t, []byte("test-data"), entry.Data)
			assert.Equal(t, now.Unix(), entry.CreatedAt)
			assert.Equal(t, now.Unix()+45, entry.ExpiresAt)
			return redis.NewStatusResult("OK", nil)
		})

	err := cache.Set(context.Background(), "test-key", []byte("test-data"), 45*time.Second)
	assert.NoError(t, err)
}

func TestKeyDBCache_Set_TTLRoundsDownToWholeSeconds(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().Set(gomock.Any(), "k", gomock.Any(), time.Second).Return(redis.NewStatusResult("OK", nil))
	assert.NoError(t, cache.Set(context.Background(), "k", []byte("v"), 300*time.Millisecond))

	mockClient.EXPECT().Set(gomock.Any(), "k", gomock.Any(), 2*time.Second).Return(redis.NewStatusResult("OK", nil))
	assert.NoError(t, cache.Set(context.Background(), "k", []byte("v"), 2500*time.Millisecond))

	mockClient.EXPECT().Set(gomock.Any(), "k", gomock.Any(), time.Second).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) *redis.StatusCmd {
			var entry models.CacheEntry
			require.NoError(t, json.Unmarshal(value.([]byte), &entry))
			assert.Equal(t, int64(1), entry.ExpiresAt-entry.CreatedAt)
			return redis.NewStatusResult("OK", nil)
		})
	assert.NoError(t, cache.Set(context.Background(), "k", []byte("v"), 1500*time.Millisecond))
}

func TestKeyDBCache_Set_Error(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().
		Set(gomock.Any(), "test-key", gomock.Any(), time.Minute).
		Return(redis.NewStatusResult("", errors.New("READONLY")))

	err := cache.Set(context.Background(), "test-key", []byte("test-data"), time.Minute)
	assert.Error(t, err)
}

func TestKeyDBCache_Delete(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().Del(gomock.Any(), "test-key").Return(redis.NewIntResult(1, nil))
	assert.NoError(t, cache.Delete(context.Background(), "test-key"))

	mockClient.EXPECT().Del(gomock.Any(), "test-key").Return(redis.NewIntResult(0, errors.New("timeout")))
	assert.Error(t, cache.Delete(context.Background(), "test-key"))
}

func TestKeyDBCache_Close(t *testing.T) {
	cache, mockClient := newTestCache(t)

	mockClient.EXPECT().Close().Return(nil)
	assert.NoError(t, cache.Close())
}
