package cache_rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/models"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache_rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}
	return path
}

func TestLoadCacheRulesConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)

	path := writeRulesFile(t, `
tier_durations:
  seconds-long: 30s
  hours-short: 2h
procedure_tiers:
  cmc.getGlobalMetrics: minutes-medium
bypass:
  - nanoBan.getBalances
`)

	cfg, err := LoadCacheRulesConfig(path, logger)
	if err != nil {
		t.Fatalf("LoadCacheRulesConfig() error = %v", err)
	}

	if got := cfg.GetTtlForTier(models.CacheTierSecondsLong); got != 30*time.Second {
		t.Errorf("seconds-long = %v, want 30s", got)
	}
	if got := cfg.GetTtlForTier(models.CacheTierHoursShort); got != 2*time.Hour {
		t.Errorf("hours-short = %v, want 2h", got)
	}
	if got := cfg.GetTtlForTier(models.CacheTierMinutesShort); got != 2*time.Minute {
		t.Errorf("minutes-short = %v, want default 2m", got)
	}
	if got := cfg.GetTierForProcedure("cmc.getGlobalMetrics", models.CacheTierMinutesShort); got != models.CacheTierMinutesMedium {
		t.Errorf("procedure tier = %s, want minutes-medium", got)
	}
	if !cfg.IsBypassed("nanoBan.getBalances") {
		t.Error("nanoBan.getBalances should be bypassed")
	}
}

func TestLoadCacheRulesConfig_Errors(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown tier in durations",
			content: "tier_durations:\n  forever: 1h\n",
			wantErr: "invalid cache tier 'forever'",
		},
		{
			name:    "unknown tier in procedure override",
			content: "procedure_tiers:\n  cmc.getGlobalMetrics: weekly\n",
			wantErr: "invalid cache tier 'weekly'",
		},
		{
			name:    "negative duration",
			content: "tier_durations:\n  seconds-short: -5s\n",
			wantErr: "must not be negative",
		},
		{
			name:    "empty bypass entry",
			content: "bypass:\n  - \"\"\n",
			wantErr: "bypass[0] is empty",
		},
		{
			name:    "duplicate bypass entry",
			content: "bypass:\n  - nanoBan.getBalances\n  - nanoBan.getBalances\n",
			wantErr: "more than once",
		},
		{
			name:    "misspelled section",
			content: "procedure_tier:\n  cmc.getGlobalMetrics: hours-short\n",
			wantErr: "field procedure_tier not found",
		},
		{
			name:    "malformed yaml",
			content: "tier_durations: [",
			wantErr: "failed to decode YAML cache rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCacheRulesConfig(writeRulesFile(t, tt.content), logger)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadCacheRulesConfig_MissingFile(t *testing.T) {
	_, err := LoadCacheRulesConfig(filepath.Join(t.TempDir(), "nope.yaml"), zaptest.NewLogger(t))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCacheRulesConfig_EmptyFile(t *testing.T) {
	cfg, err := LoadCacheRulesConfig(writeRulesFile(t, ""), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("LoadCacheRulesConfig() error = %v", err)
	}
	if got := cfg.GetTtlForTier(models.CacheTierSecondsShort); got != 5*time.Second {
		t.Errorf("seconds-short = %v, want default 5s", got)
	}
}
