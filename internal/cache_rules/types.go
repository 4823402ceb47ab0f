package cache_rules

import (
	"time"

	"go-market-cache/internal/models"
)

// CacheRulesConfig represents the cache rules file
type CacheRulesConfig struct {
	TierDurations  map[models.CacheTier]time.Duration `yaml:"tier_durations"`
	ProcedureTiers map[string]models.CacheTier        `yaml:"procedure_tiers"`
	Bypass         []string                           `yaml:"bypass"`
}
