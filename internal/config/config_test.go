package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadLimits_Defaults(t *testing.T) {
	l := LoadLimits()

	assert.True(t, l.MinTransaction.Equal(decimal.NewFromInt(100)))
	assert.True(t, l.MaxTransaction.Equal(decimal.NewFromInt(50000)))
	assert.True(t, l.DailyLimit.Equal(decimal.NewFromInt(100000)))
	assert.True(t, l.MonthlyLimit.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, l.MaxBalance.Equal(decimal.NewFromInt(500000)))
}

func TestLoadLimits_Overrides(t *testing.T) {
	t.Setenv("WALLET_DAILY_LIMIT", "2500.50")
	t.Setenv("WALLET_MIN_TRANSACTION", "not-a-number")

	l := LoadLimits()

	assert.True(t, l.DailyLimit.Equal(decimal.RequireFromString("2500.50")))
	assert.True(t, l.MinTransaction.Equal(decimal.NewFromInt(100)))
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want time.Duration
	}{
		{"go duration", "250ms", 250 * time.Millisecond},
		{"bare milliseconds", "1500", 1500 * time.Millisecond},
		{"garbage falls back", "soon", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SETTLEMENT_DELAY", tt.val)
			assert.Equal(t, tt.want, GetDurationEnv("SETTLEMENT_DELAY", time.Second))
		})
	}
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/ledger")
	t.Setenv("REDIS_HOST", "cache")

	cfg := Load()

	assert.Equal(t, "postgres://u:p@db:5432/ledger", cfg.DatabaseDSN)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_SettlementAndRateLimitDefaults(t *testing.T) {
	t.Setenv("SETTLEMENT_WORKERS", "")
	t.Setenv("SETTLEMENT_QUEUE", "")
	t.Setenv("AUTH_RATE_LIMIT", "12")

	cfg := Load()

	assert.Equal(t, 4, cfg.SettlementWorkers)
	assert.Equal(t, 256, cfg.SettlementQueue)
	assert.Equal(t, 12, cfg.AuthRateLimit)
}
