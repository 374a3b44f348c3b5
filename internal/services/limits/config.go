package limits

import "github.com/shopspring/decimal"

// Config holds the wallet limits. All values are in the wallet currency.
type Config struct {
	MinTransaction decimal.Decimal
	MaxTransaction decimal.Decimal
	DailyLimit     decimal.Decimal
	MonthlyLimit   decimal.Decimal
	MaxBalance     decimal.Decimal
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MinTransaction: decimal.NewFromInt(100),
		MaxTransaction: decimal.NewFromInt(50000),
		DailyLimit:     decimal.NewFromInt(100000),
		MonthlyLimit:   decimal.NewFromInt(1000000),
		MaxBalance:     decimal.NewFromInt(500000),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinTransaction.IsZero() {
		c.MinTransaction = d.MinTransaction
	}
	if c.MaxTransaction.IsZero() {
		c.MaxTransaction = d.MaxTransaction
	}
	if c.DailyLimit.IsZero() {
		c.DailyLimit = d.DailyLimit
	}
	if c.MonthlyLimit.IsZero() {
		c.MonthlyLimit = d.MonthlyLimit
	}
	if c.MaxBalance.IsZero() {
		c.MaxBalance = d.MaxBalance
	}
	return c
}
