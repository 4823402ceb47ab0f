package cache_rules

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-market-cache/internal/interfaces/mock"
	"go-market-cache/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	ctrl := gomock.NewController(t)
	rules := mock.NewMockCacheRulesConfig(ctrl)
	classifier := NewClassifier(zaptest.NewLogger(t), rules)

	t.Run("fallback tier", func(t *testing.T) {
		rules.EXPECT().GetTierForProcedure("cmc.getRankedCryptoList", models.CacheTierMinutesShort).Return(models.CacheTierMinutesShort)
		rules.EXPECT().IsBypassed("cmc.getRankedCryptoList").Return(false)
		rules.EXPECT().GetTtlForTier(models.CacheTierMinutesShort).Return(2 * time.Minute)

		info := classifier.Classify("cmc.getRankedCryptoList", models.CacheTierMinutesShort)
		if info.Tier != models.CacheTierMinutesShort || info.TTL != 2*time.Minute {
			t.Errorf("Classify() = %+v", info)
		}
		if info.Bypass() {
			t.Error("should not bypass")
		}
	})

	t.Run("bypassed procedure", func(t *testing.T) {
		rules.EXPECT().GetTierForProcedure("nanoBan.getBalances", models.CacheTierSecondsMedium).Return(models.CacheTierSecondsMedium)
		rules.EXPECT().IsBypassed("nanoBan.getBalances").Return(true)

		info := classifier.Classify("nanoBan.getBalances", models.CacheTierSecondsMedium)
		if !info.Bypass() {
			t.Errorf("Classify() = %+v, want bypass", info)
		}
	})

	t.Run("zero ttl tier", func(t *testing.T) {
		rules.EXPECT().GetTierForProcedure("exchange.getOHLCV", models.CacheTierSecondsMedium).Return(models.CacheTierSecondsShort)
		rules.EXPECT().IsBypassed("exchange.getOHLCV").Return(false)
		rules.EXPECT().GetTtlForTier(models.CacheTierSecondsShort).Return(time.Duration(0))

		info := classifier.Classify("exchange.getOHLCV", models.CacheTierSecondsMedium)
		if info.Tier != models.CacheTierSecondsShort || !info.Bypass() {
			t.Errorf("Classify() = %+v", info)
		}
	})
}

func TestClassifier_WithRealConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)
	classifier := NewClassifier(logger, NewCacheConfig(&CacheRulesConfig{
		ProcedureTiers: map[string]models.CacheTier{"cmc.getGlobalMetrics": models.CacheTierMinutesMedium},
	}, logger))

	info := classifier.Classify("cmc.getGlobalMetrics", models.CacheTierMinutesShort)
	if info.Tier != models.CacheTierMinutesMedium || info.TTL != 10*time.Minute {
		t.Errorf("Classify() = %+v", info)
	}

	info = classifier.Classify("", models.CacheTierMinutesShort)
	if !info.Bypass() {
		t.Errorf("empty procedure should bypass, got %+v", info)
	}
}
