package cache_rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadCacheRulesConfig loads cache rules from a YAML file. Unknown keys are
// rejected so a misspelled section cannot silently fall back to defaults.
func LoadCacheRulesConfig(rulesPath string, logger *zap.Logger) (*CacheConfig, error) {
	logger.Info("Loading cache rules config", zap.String("path", rulesPath))

	file, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache rules file: %w", err)
	}
	defer file.Close()

	var config CacheRulesConfig
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML cache rules: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("cache rules validation failed: %w", err)
	}

	logger.Info("Cache rules config loaded successfully",
		zap.Int("tier_overrides", len(config.TierDurations)),
		zap.Int("procedure_overrides", len(config.ProcedureTiers)),
		zap.Int("bypassed", len(config.Bypass)))

	return NewCacheConfig(&config, logger), nil
}

// validateConfig validates the cache rules configuration structure
func validateConfig(config *CacheRulesConfig) error {
	for tier, d := range config.TierDurations {
		if !tier.IsValid() {
			return fmt.Errorf("tier_durations has unknown tier '%s'", tier)
		}
		if d < 0 {
			return fmt.Errorf("tier_durations.%s must not be negative", tier)
		}
	}

	for procedure := range config.ProcedureTiers {
		if procedure == "" {
			return fmt.Errorf("procedure_tiers contains an empty procedure name")
		}
	}

	bypassed := make(map[string]struct{}, len(config.Bypass))

	for i, procedure := range config.Bypass {
		if procedure == "" {
			return fmt.Errorf("bypass[%d] is empty", i)
		}
		if _, dup := bypassed[procedure]; dup {
			return fmt.Errorf("bypass lists '%s' more than once", procedure)
		}
		bypassed[procedure] = struct{}{}
	}

	return nil
}
