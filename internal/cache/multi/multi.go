package multi

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/config"
	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

// MultiCache is a composite cache over ordered levels, fastest first.
// Reads stop at the first hit; writes and deletes go to every level.
type MultiCache struct {
	caches []interfaces.Cache
	config *config.MultiCacheConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewMultiCache creates a new MultiCache; caches[0] is treated as L1 and caches[1] as L2
func NewMultiCache(caches []interfaces.Cache, cfg *config.MultiCacheConfig, logger *zap.Logger) *MultiCache {
	return &MultiCache{
		caches: caches,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Get retrieves value from the first cache that has the key
func (mc *MultiCache) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	entry, level := mc.GetWithLevel(ctx, key)
	return entry, level != models.CacheLevelMiss
}

// GetWithLevel is Get that also reports which level served the hit.
// With propagation enabled, a hit below L1 is copied into the faster levels.
func (mc *MultiCache) GetWithLevel(ctx context.Context, key string) (*models.CacheEntry, models.CacheLevel) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return nil, models.CacheLevelMiss
	}

	for i, cache := range mc.caches {
		entry, found := cache.Get(ctx, key)
		if !found {
			continue
		}

		if i > 0 && mc.config.EnablePropagation {
			mc.backfill(ctx, key, entry, i)
		}
		return entry, levelOf(i)
	}

	return nil, models.CacheLevelMiss
}

// Set stores value in all caches; the L1 TTL is capped at the configured maximum
func (mc *MultiCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return errors.New("no caches configured")
	}

	var errs []error
	for i, cache := range mc.caches {
		if err := cache.Set(ctx, key, val, mc.capTTL(i, ttl)); err != nil {
			mc.logger.Warn("Cache level set failed",
				zap.String("key", key),
				zap.String("level", string(levelOf(i))),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delete removes entry from all caches
func (mc *MultiCache) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, cache := range mc.caches {
		if err := cache.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (mc *MultiCache) backfill(ctx context.Context, key string, entry *models.CacheEntry, hitIndex int) {
	remaining := time.Duration(entry.ExpiresAt-mc.now().Unix()) * time.Second
	if remaining < time.Second {
		return
	}

	for i := 0; i < hitIndex; i++ {
		if err := mc.caches[i].Set(ctx, key, entry.Data, mc.capTTL(i, remaining)); err != nil {
			mc.logger.Debug("Cache backfill failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (mc *MultiCache) capTTL(index int, ttl time.Duration) time.Duration {
	if index == 0 && mc.config.L1MaxTTL > 0 && ttl > mc.config.L1MaxTTL {
		return mc.config.L1MaxTTL
	}
	return ttl
}

func levelOf(index int) models.CacheLevel {
	if index == 0 {
		return models.CacheLevelL1
	}
	return models.CacheLevelL2
}
