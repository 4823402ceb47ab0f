package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/metrics"
	"go-market-cache/internal/models"
)

// Ensure CacheService implements interfaces.FastCache
var _ interfaces.FastCache = (*CacheService)(nil)

// CacheService is the fast cache facade used by procedures.
// It never reports a failure as an error: a broken store degrades to misses.
type CacheService struct {
	multiCache interfaces.LevelAwareCache
	rules      interfaces.CacheRulesConfig
	logger     *zap.Logger
}

// NewCacheService creates a new cache service over the composed cache levels
func NewCacheService(multiCache interfaces.LevelAwareCache, rules interfaces.CacheRulesConfig, logger *zap.Logger) *CacheService {
	return &CacheService{
		multiCache: multiCache,
		rules:      rules,
		logger:     logger,
	}
}

// Get decodes the cached value for key into dest. It returns false on miss,
// expiry, store error or a value that no longer decodes into dest.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	start := time.Now()
	operation := operationOf(key)
	metrics.RecordCacheRequest(operation)

	entry, level := s.multiCache.GetWithLevel(ctx, key)
	if level == models.CacheLevelMiss || entry == nil {
		metrics.RecordCacheMiss(operation)
		s.logger.Debug("cache miss", zap.String("key", key), zap.Duration("took", time.Since(start)))
		return false
	}

	if err := json.Unmarshal(entry.Data, dest); err != nil {
		metrics.RecordCacheError(strings.ToLower(string(level)), "decode")
		metrics.RecordCacheMiss(operation)
		s.logger.Warn("cache error", zap.String("key", key), zap.String("op", "decode"), zap.Error(err))
		return false
	}

	metrics.RecordCacheHit(operation, string(level))
	s.logger.Debug("cache hit",
		zap.String("key", key),
		zap.String("level", string(level)),
		zap.Duration("took", time.Since(start)))
	return true
}

// Set stores value under key with the tier's TTL. The result only says whether
// the write landed; callers are free to ignore it.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, tier models.CacheTier) bool {
	start := time.Now()
	ttl := s.rules.GetTtlForTier(tier)
	if ttl <= 0 {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheError("multi", "encode")
		metrics.RecordCacheSet(string(tier), false)
		s.logger.Warn("cache error", zap.String("key", key), zap.String("op", "encode"), zap.Error(err))
		return false
	}

	if err := s.multiCache.Set(ctx, key, data, ttl); err != nil {
		metrics.RecordCacheSet(string(tier), false)
		s.logger.Warn("cache error", zap.String("key", key), zap.String("op", "set"), zap.Error(err))
		return false
	}

	metrics.RecordCacheSet(string(tier), true)
	s.logger.Debug("cache set",
		zap.String("key", key),
		zap.String("tier", string(tier)),
		zap.Duration("ttl", ttl),
		zap.Duration("took", time.Since(start)))
	return true
}

// Delete removes key from every level
func (s *CacheService) Delete(ctx context.Context, key string) bool {
	if err := s.multiCache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache error", zap.String("key", key), zap.String("op", "delete"), zap.Error(err))
		return false
	}
	s.logger.Info("cache key deleted", zap.String("key", key))
	return true
}

// operationOf extracts the procedure name prefix of a derived key
func operationOf(key string) string {
	if i := strings.LastIndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "unknown"
}
