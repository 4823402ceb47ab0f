package interfaces

import (
	"context"
	"time"

	"go-market-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache is a single fast-cache tier holding serialized entries
type Cache interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, bool) // returns entry and found flag
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// LevelAwareCache reports which tier served a hit
type LevelAwareCache interface {
	Cache
	GetWithLevel(ctx context.Context, key string) (*models.CacheEntry, models.CacheLevel)
}
