package interfaces

import (
	"go-market-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache_rules_classifier.go -destination=mock/cache_rules_classifier.go

// CacheRulesClassifier decides how a procedure call is cached
type CacheRulesClassifier interface {
	// Classify returns the tier and TTL for a procedure; a zero TTL means bypass
	Classify(procedure string, fallback models.CacheTier) models.CacheInfo
}
