// Package limits evaluates the per-transaction, daily, monthly and balance
// ceilings a wallet operation must satisfy before it is applied.
package limits

import (
	"context"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerReader is the read side of the ledger the policy needs.
type LedgerReader interface {
	FindWallet(ctx context.Context, userID string) (*models.Wallet, error)
	Aggregate(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error)
}

// Policy checks a proposed amount against the configured limits. It never
// mutates state. The check runs before the ledger commit and is not atomic
// with it, so concurrent credits can overshoot the daily or monthly ceiling
// by at most one transaction.
type Policy struct {
	cfg    Config
	ledger LedgerReader
	now    func() time.Time
	loc    *time.Location
}

type Option func(*Policy)

// WithClock overrides the time source used to find the day and month
// windows.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.now = now }
}

// WithLocation sets the zone whose midnight starts a new day.
func WithLocation(loc *time.Location) Option {
	return func(p *Policy) { p.loc = loc }
}

func NewPolicy(cfg Config, ledger LedgerReader, opts ...Option) *Policy {
	if ledger == nil {
		panic("ledger reader is required")
	}
	p := &Policy{
		cfg:    cfg.withDefaults(),
		ledger: ledger,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Policy) Config() Config {
	return p.cfg
}

// Check evaluates the rules in order and returns the first failure as an
// ErrLimitExceeded carrying the rule's reason. Daily, monthly and balance
// rules apply to credits only.
func (p *Policy) Check(ctx context.Context, userID string, amount decimal.Decimal, txType string) error {
	if amount.LessThan(p.cfg.MinTransaction) {
		return apperrors.ErrLimitExceeded.WithReason(apperrors.ReasonBelowMinimum)
	}
	if amount.GreaterThan(p.cfg.MaxTransaction) {
		return apperrors.ErrLimitExceeded.WithReason(apperrors.ReasonAboveMaximum)
	}
	if txType != models.TransactionTypeCredit {
		return nil
	}

	now := p.now().In(p.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, p.loc)

	daily, err := p.ledger.Aggregate(ctx, userID, models.TransactionTypeCredit, dayStart, now)
	if err != nil {
		return err
	}
	if daily.Add(amount).GreaterThan(p.cfg.DailyLimit) {
		return apperrors.ErrLimitExceeded.WithReason(apperrors.ReasonDaily)
	}

	monthly, err := p.ledger.Aggregate(ctx, userID, models.TransactionTypeCredit, monthStart, now)
	if err != nil {
		return err
	}
	if monthly.Add(amount).GreaterThan(p.cfg.MonthlyLimit) {
		return apperrors.ErrLimitExceeded.WithReason(apperrors.ReasonMonthly)
	}

	wallet, err := p.ledger.FindWallet(ctx, userID)
	if err != nil {
		return err
	}
	if wallet.Balance.Add(amount).GreaterThan(p.cfg.MaxBalance) {
		return apperrors.ErrLimitExceeded.WithReason(apperrors.ReasonMaxBalance)
	}

	return nil
}
