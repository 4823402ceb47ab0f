package noop

import (
	"context"
	"time"

	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache stands in for a disabled cache level
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(_ context.Context, _ string) (*models.CacheEntry, bool) {
	return nil, false
}

func (n *NoOpCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (n *NoOpCache) Delete(_ context.Context, _ string) error {
	return nil
}
