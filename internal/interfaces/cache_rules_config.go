package interfaces

import (
	"time"

	"go-market-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache_rules_config.go -destination=mock/cache_rules_config.go

// CacheRulesConfig exposes the configured tier table and per-procedure overrides
type CacheRulesConfig interface {
	// GetTierForProcedure returns the configured tier override, or fallback when none is set
	GetTierForProcedure(procedure string, fallback models.CacheTier) models.CacheTier
	// GetTtlForTier returns the concrete TTL of a tier
	GetTtlForTier(tier models.CacheTier) time.Duration
	// IsBypassed returns true if the procedure must never be served from the fast cache
	IsBypassed(procedure string) bool
}
