package cache_rules

import (
	"go.uber.org/zap"

	"go-market-cache/internal/interfaces"
	"go-market-cache/internal/models"
)

// Classifier implements the CacheRulesClassifier interface
type Classifier struct {
	logger    *zap.Logger
	configTTL interfaces.CacheRulesConfig
}

// Ensure Classifier implements the CacheRulesClassifier interface
var _ interfaces.CacheRulesClassifier = (*Classifier)(nil)

// NewClassifier creates a new Classifier instance
func NewClassifier(logger *zap.Logger, configTTL interfaces.CacheRulesConfig) *Classifier {
	return &Classifier{
		logger:    logger,
		configTTL: configTTL,
	}
}

// Classify resolves the tier and TTL for a procedure. Bypassed procedures
// and tiers with a zero TTL come back with TTL 0.
func (c *Classifier) Classify(procedure string, fallback models.CacheTier) models.CacheInfo {
	tier := c.configTTL.GetTierForProcedure(procedure, fallback)

	if procedure == "" || c.configTTL.IsBypassed(procedure) {
		if c.logger != nil {
			c.logger.Debug("Fast cache bypassed", zap.String("procedure", procedure))
		}
		return models.CacheInfo{Tier: tier, TTL: 0}
	}

	return models.CacheInfo{Tier: tier, TTL: c.configTTL.GetTtlForTier(tier)}
}
