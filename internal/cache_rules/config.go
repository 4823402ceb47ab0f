package cache_rules

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

// CacheConfig implements the CacheRulesConfig interface
type CacheConfig struct {
	config    *CacheRulesConfig
	durations models.TierDurations
	bypass    map[string]struct{}
	logger    *zap.Logger
}

// Ensure CacheConfig implements the CacheRulesConfig interface
var _ interfaces.CacheRulesConfig = (*CacheConfig)(nil)

// NewCacheConfig creates a new CacheConfig instance
func NewCacheConfig(config *CacheRulesConfig, logger *zap.Logger) *CacheConfig {
	if config == nil {
		panic("config cannot be nil")
	}

	durations := models.DefaultTierDurations()
	for tier, d := range config.TierDurations {
		durations[tier] = d
	}

	bypass := make(map[string]struct{}, len(config.Bypass))
	for _, procedure := range config.Bypass {
		bypass[procedure] = struct{}{}
	}

	return &CacheConfig{
		config:    config,
		durations: durations,
		bypass:    bypass,
		logger:    logger,
	}
}

// DefaultCacheConfig returns rules with the built-in tier table and no overrides
func DefaultCacheConfig(logger *zap.Logger) *CacheConfig {
	return NewCacheConfig(&CacheRulesConfig{}, logger)
}

// GetTierForProcedure returns the configured tier override or fallback
func (cr *CacheConfig) GetTierForProcedure(procedure string, fallback models.CacheTier) models.CacheTier {
	if tier, ok := cr.config.ProcedureTiers[procedure]; ok {
		if cr.logger != nil {
			cr.logger.Debug("Procedure tier overridden",
				zap.String("procedure", procedure),
				zap.String("tier", string(tier)))
		}
		return tier
	}
	return fallback
}

// GetTtlForTier returns the concrete TTL for a tier. An explicit zero in
// the rules file disables caching for that tier.
func (cr *CacheConfig) GetTtlForTier(tier models.CacheTier) time.Duration {
	if d, ok := cr.durations[tier]; ok {
		return d
	}
	return 0
}

func (cr *CacheConfig) IsBypassed(procedure string) bool {
	_, ok := cr.bypass[procedure]
	return ok
}

// GetAllProcedures returns every procedure named in the rules file
func (cr *CacheConfig) GetAllProcedures() []string {
	procedures := make([]string, 0, len(cr.config.ProcedureTiers)+len(cr.config.Bypass))
	for procedure := range cr.config.ProcedureTiers {
		procedures = append(procedures, procedure)
	}
	procedures = append(procedures, cr.config.Bypass...)
	return procedures
}

// UnknownProcedures returns the procedures named in the rules file that are
// not in registered, sorted. Such entries are typos or stale renames.
func (cr *CacheConfig) UnknownProcedures(registered []string) []string {
	known := make(map[string]struct{}, len(registered))
	for _, name := range registered {
		known[name] = struct{}{}
	}

	seen := make(map[string]struct{})
	var unknown []string
	for _, procedure := range cr.GetAllProcedures() {
		if _, ok := known[procedure]; ok {
			continue
		}
		if _, dup := seen[procedure]; dup {
			continue
		}
		seen[procedure] = struct{}{}
		unknown = append(unknown, procedure)
	}
	sort.Strings(unknown)
	return unknown
}
