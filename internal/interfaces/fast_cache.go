package interfaces

import (
	"context"

	"go-market-cache/internal/models"
)

//go:generate mockgen -package=mock -source=fast_cache.go -destination=mock/fast_cache.go

// FastCache stores JSON-serializable values under derived keys.
// Failures never surface as errors: a failed Get is a miss and a failed Set returns false.
type FastCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, tier models.CacheTier) bool
	Delete(ctx context.Context, key string) bool
}
