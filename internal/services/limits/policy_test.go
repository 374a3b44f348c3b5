package limits

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) FindWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if w, ok := args.Get(0).(*models.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedger) Aggregate(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestPolicy_Check(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		amount     int64
		txType     string
		setupMock  func(*MockLedger)
		wantReason string
	}{
		{
			name:       "below minimum",
			amount:     99,
			txType:     models.TransactionTypeCredit,
			wantReason: apperrors.ReasonBelowMinimum,
		},
		{
			name:       "above maximum debit",
			amount:     50001,
			txType:     models.TransactionTypeDebit,
			wantReason: apperrors.ReasonAboveMaximum,
		},
		{
			name:   "debit skips aggregate rules",
			amount: 400,
			txType: models.TransactionTypeDebit,
		},
		{
			name:   "daily limit reached exactly is allowed",
			amount: 100,
			txType: models.TransactionTypeCredit,
			setupMock: func(m *MockLedger) {
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, dayStart, now).Return(d(99900), nil)
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, monthStart, now).Return(d(99900), nil)
				m.On("FindWallet", mock.Anything, "u1").Return(&models.Wallet{Balance: d(0)}, nil)
			},
		},
		{
			name:   "daily limit",
			amount: 101,
			txType: models.TransactionTypeCredit,
			setupMock: func(m *MockLedger) {
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, dayStart, now).Return(d(99900), nil)
			},
			wantReason: apperrors.ReasonDaily,
		},
		{
			name:   "monthly limit",
			amount: 5000,
			txType: models.TransactionTypeCredit,
			setupMock: func(m *MockLedger) {
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, dayStart, now).Return(d(0), nil)
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, monthStart, now).Return(d(998000), nil)
			},
			wantReason: apperrors.ReasonMonthly,
		},
		{
			name:   "max balance",
			amount: 1000,
			txType: models.TransactionTypeCredit,
			setupMock: func(m *MockLedger) {
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, dayStart, now).Return(d(0), nil)
				m.On("Aggregate", mock.Anything, "u1", models.TransactionTypeCredit, monthStart, now).Return(d(0), nil)
				m.On("FindWallet", mock.Anything, "u1").Return(&models.Wallet{Balance: d(499500)}, nil)
			},
			wantReason: apperrors.ReasonMaxBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := new(MockLedger)
			if tt.setupMock != nil {
				tt.setupMock(ledger)
			}
			p := NewPolicy(DefaultConfig(), ledger, WithClock(func() time.Time { return now }), WithLocation(time.UTC))

			err := p.Check(context.Background(), "u1", d(tt.amount), tt.txType)

			if tt.wantReason == "" {
				assert.NoError(t, err)
			} else {
				require.ErrorIs(t, err, apperrors.ErrLimitExceeded)
				var de *apperrors.DomainError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, tt.wantReason, de.Reason)
			}
			ledger.AssertExpectations(t)
		})
	}
}

func TestPolicy_MissingWalletOnCredit(t *testing.T) {
	ledger := memory.NewLedger()
	p := NewPolicy(DefaultConfig(), ledger)

	err := p.Check(context.Background(), "nobody", d(500), models.TransactionTypeCredit)
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
}

func TestPolicy_DailyWindowStartsAtLocalMidnight(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("WAT", 3600)
	ledger := memory.NewLedger()
	require.NoError(t, ledger.CreateWallet(ctx, &models.Wallet{UserID: "u1"}))

	lateYesterday := time.Date(2024, 5, 16, 23, 59, 0, 0, loc)
	_, _, err := ledger.ApplyAtomic(ctx, "u1", d(50000), &models.Transaction{
		Amount:    d(50000),
		Type:      models.TransactionTypeCredit,
		CreatedAt: lateYesterday,
	})
	require.NoError(t, err)
	_, _, err = ledger.ApplyAtomic(ctx, "u1", d(50000), &models.Transaction{
		Amount:    d(50000),
		Type:      models.TransactionTypeCredit,
		CreatedAt: lateYesterday.Add(-time.Hour),
	})
	require.NoError(t, err)

	now := time.Date(2024, 5, 17, 0, 1, 0, 0, loc)
	p := NewPolicy(DefaultConfig(), ledger, WithClock(func() time.Time { return now }), WithLocation(loc))

	// Yesterday's 100000 does not count toward today.
	assert.NoError(t, p.Check(ctx, "u1", d(50000), models.TransactionTypeCredit))

	_, _, err = ledger.ApplyAtomic(ctx, "u1", d(50000), &models.Transaction{
		Amount:    d(50000),
		Type:      models.TransactionTypeCredit,
		CreatedAt: now,
	})
	require.NoError(t, err)
	_, _, err = ledger.ApplyAtomic(ctx, "u1", d(50000), &models.Transaction{
		Amount:    d(50000),
		Type:      models.TransactionTypeCredit,
		CreatedAt: now,
	})
	require.NoError(t, err)

	err = p.Check(ctx, "u1", d(100), models.TransactionTypeCredit)
	require.ErrorIs(t, err, apperrors.ErrLimitExceeded)
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, apperrors.ReasonDaily, de.Reason)
}

func TestNewPolicy_FillsZeroLimits(t *testing.T) {
	p := NewPolicy(Config{DailyLimit: d(10)}, memory.NewLedger())

	cfg := p.Config()
	assert.True(t, cfg.DailyLimit.Equal(d(10)))
	assert.True(t, cfg.MinTransaction.Equal(d(100)))
}
