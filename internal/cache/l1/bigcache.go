package l1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/metrics"
	"go-market-cache/internal/models"
	"go-market-cache/internal/scheduler"
)

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the in-process L1 cache using BigCache
type BigCache struct {
	cache            *bigcache.BigCache
	logger           *zap.Logger
	maxSizeBytes     int64
	now              func() time.Time
	metricsScheduler *scheduler.Scheduler
}

// NewBigCache creates a new BigCache instance. lifeWindow is the hard eviction
// horizon; entries also carry their own expiry which is checked on read.
func NewBigCache(bigcacheCfg *config.BigCacheConfig, lifeWindow time.Duration, logger *zap.Logger) (*BigCache, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.HardMaxCacheSize = bigcacheCfg.Size // Size in MB
	cfg.Verbose = false
	cfg.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigcache: %w", err)
	}

	bc := &BigCache{
		cache:        cache,
		logger:       logger,
		maxSizeBytes: int64(bigcacheCfg.Size) * 1024 * 1024,
		now:          time.Now,
	}

	bc.startMetricsCollection()

	return bc, nil
}

// Get retrieves a live entry; expired or corrupted entries are removed and reported as a miss
func (bc *BigCache) Get(_ context.Context, key string) (*models.CacheEntry, bool) {
	defer metrics.TimeCacheOperation("get", "l1")()

	data, err := bc.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			bc.logger.Warn("L1 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l1", "upstream")
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key)
		return nil, false
	}

	if entry.IsExpired(bc.now().Unix()) {
		_ = bc.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores value in cache with TTL
func (bc *BigCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	now := bc.now().Unix()

	entry := models.CacheEntry{
		Data:      val,
		CreatedAt: now,
		ExpiresAt: now + models.TTLSeconds(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		metrics.RecordCacheError("l1", "encode")
		return fmt.Errorf("failed to marshal L1 cache entry: %w", err)
	}

	if err := bc.cache.Set(key, data); err != nil {
		metrics.RecordCacheError("l1", "upstream")
		return fmt.Errorf("failed to set L1 cache entry: %w", err)
	}

	return nil
}

// Delete removes entry from cache; a missing key is not an error
func (bc *BigCache) Delete(_ context.Context, key string) error {
	err := bc.cache.Delete(key)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("failed to delete L1 cache entry: %w", err)
	}
	return nil
}

// Close closes the cache
func (bc *BigCache) Close() error {
	bc.stopMetricsCollection()

	return bc.cache.Close()
}

// GetStats returns cache statistics for metrics
func (bc *BigCache) GetStats() (capacity, used, keys int64) {
	return bc.maxSizeBytes, int64(bc.cache.Capacity()), int64(bc.cache.Len())
}

func (bc *BigCache) startMetricsCollection() {
	bc.metricsScheduler = scheduler.New(30*time.Second, bc.updateMetrics)
	bc.metricsScheduler.Start()

	// Initial collection
	bc.updateMetrics()

	bc.logger.Debug("Started L1 cache metrics collection")
}

func (bc *BigCache) stopMetricsCollection() {
	if bc.metricsScheduler != nil {
		bc.metricsScheduler.Stop()
		bc.logger.Debug("Stopped L1 cache metrics collection")
	}
}

func (bc *BigCache) updateMetrics() {
	capacity, used, keys := bc.GetStats()

	metrics.UpdateL1CacheCapacity(capacity, used)
	metrics.UpdateCacheKeys("l1", keys)
}
