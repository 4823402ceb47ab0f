package l2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/metrics"
	"go-market-cache/internal/models"
)

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements the remote L2 cache using Redis/KeyDB.
// Expiry is enforced by the store through EX; the envelope expiry is re-checked on read.
type KeyDBCache struct {
	client interfaces.KeyDbClient
	config *config.KeyDBConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(cfg *config.KeyDBConfig, client interfaces.KeyDbClient, logger *zap.Logger) *KeyDBCache {
	return &KeyDBCache{
		client: client,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Get retrieves a live entry from KeyDB. Store errors are logged and reported as a miss.
func (kc *KeyDBCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	defer metrics.TimeCacheOperation("get", "l2")()

	ctx, cancel := context.WithTimeout(ctx, kc.config.Connection.ReadTimeout)
	defer cancel()

	data, err := kc.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			kc.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l2", "upstream")
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		kc.logger.Error("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		kc.client.Del(ctx, key)
		return nil, false
	}

	if entry.IsExpired(kc.now().Unix()) {
		return nil, false
	}

	return &entry, true
}

// Set stores value in KeyDB with a whole-second expiry
func (kc *KeyDBCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, kc.config.Connection.SendTimeout)
	defer cancel()

	now := kc.now().Unix()
	secs := models.TTLSeconds(ttl)

	entry := models.CacheEntry{
		Data:      val,
		CreatedAt: now,
		ExpiresAt: now + secs,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		metrics.RecordCacheError("l2", "encode")
		return fmt.Errorf("failed to marshal L2 cache entry: %w", err)
	}

	if err := kc.client.Set(ctx, key, data, time.Duration(secs)*time.Second).Err(); err != nil {
		metrics.RecordCacheError("l2", "upstream")
		return fmt.Errorf("failed to set L2 cache entry: %w", err)
	}

	return nil
}

// Delete removes entry from KeyDB cache
func (kc *KeyDBCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, kc.config.Connection.SendTimeout)
	defer cancel()

	if err := kc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete L2 cache entry: %w", err)
	}
	return nil
}

// Close closes the KeyDB connection
func (kc *KeyDBCache) Close() error {
	return kc.client.Close()
}
