package models

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheTier names a cache duration class
type CacheTier string

const (
	CacheTierSecondsShort  CacheTier = "seconds-short"
	CacheTierSecondsMedium CacheTier = "seconds-medium"
	CacheTierSecondsLong   CacheTier = "seconds-long"
	CacheTierMinutesShort  CacheTier = "minutes-short"
	CacheTierMinutesMedium CacheTier = "minutes-medium"
	CacheTierHoursShort    CacheTier = "hours-short"
	CacheTierHoursMedium   CacheTier = "hours-medium"
	CacheTierHoursLong     CacheTier = "hours-long"
)

// defaultTierDurations are used for tiers not overridden in configuration
var defaultTierDurations = map[CacheTier]time.Duration{
	CacheTierSecondsShort:  5 * time.Second,
	CacheTierSecondsMedium: 15 * time.Second,
	CacheTierSecondsLong:   45 * time.Second,
	CacheTierMinutesShort:  2 * time.Minute,
	CacheTierMinutesMedium: 10 * time.Minute,
	CacheTierHoursShort:    time.Hour,
	CacheTierHoursMedium:   6 * time.Hour,
	CacheTierHoursLong:     24 * time.Hour,
}

// AllCacheTiers returns every known tier in ascending duration order
func AllCacheTiers() []CacheTier {
	return []CacheTier{
		CacheTierSecondsShort,
		CacheTierSecondsMedium,
		CacheTierSecondsLong,
		CacheTierMinutesShort,
		CacheTierMinutesMedium,
		CacheTierHoursShort,
		CacheTierHoursMedium,
		CacheTierHoursLong,
	}
}

// IsValid reports whether the tier is one of the known tiers
func (t CacheTier) IsValid() bool {
	_, ok := defaultTierDurations[t]
	return ok
}

// DefaultDuration returns the built-in duration of the tier, or 0 for unknown tiers
func (t CacheTier) DefaultDuration() time.Duration {
	return defaultTierDurations[t]
}

// UnmarshalYAML implements custom YAML unmarshaling for CacheTier
func (t *CacheTier) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	tier := CacheTier(str)
	if !tier.IsValid() {
		names := make([]string, 0, len(defaultTierDurations))
		for _, known := range AllCacheTiers() {
			names = append(names, "'"+string(known)+"'")
		}
		return fmt.Errorf("invalid cache tier '%s': must be one of %s", str, strings.Join(names, ", "))
	}

	*t = tier
	return nil
}

// TierDurations maps tiers to concrete TTLs
type TierDurations map[CacheTier]time.Duration

// DefaultTierDurations returns a copy of the built-in tier table
func DefaultTierDurations() TierDurations {
	out := make(TierDurations, len(defaultTierDurations))
	for tier, d := range defaultTierDurations {
		out[tier] = d
	}
	return out
}

// Duration resolves a tier, falling back to the built-in table
func (td TierDurations) Duration(tier CacheTier) time.Duration {
	if d, ok := td[tier]; ok && d > 0 {
		return d
	}
	return tier.DefaultDuration()
}


// CacheInfo is the resolved caching decision for a procedure
type CacheInfo struct {
	Tier CacheTier     `json:"tier"`
	TTL  time.Duration `json:"ttl"`
}

// Bypass reports whether the procedure should skip the fast cache
func (c CacheInfo) Bypass() bool {
	return c.TTL <= 0
}
