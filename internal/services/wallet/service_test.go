package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/logger"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/cache"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/memory"
	"github.com/llshivamsinghll/bank-wallet/internal/services/limits"
	"github.com/llshivamsinghll/bank-wallet/internal/services/settlement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(task settlement.Task) error {
	return m.Called(task).Error(0)
}

type MockBalanceCache struct {
	mock.Mock
}

func (m *MockBalanceCache) GetBalance(ctx context.Context, userID string) (*cache.Balance, bool, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).(*cache.Balance)
	return b, args.Bool(1), args.Error(2)
}

func (m *MockBalanceCache) SetBalance(ctx context.Context, userID string, b cache.Balance) error {
	return m.Called(ctx, userID, b).Error(0)
}

func (m *MockBalanceCache) FillBalance(ctx context.Context, userID string, b cache.Balance) error {
	return m.Called(ctx, userID, b).Error(0)
}

func (m *MockBalanceCache) InvalidateBalance(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperationDuration(op string, d time.Duration) { m.Called(op, d) }
func (m *MockMetrics) RecordOperationResult(op, result string)            { m.Called(op, result) }
func (m *MockMetrics) RecordError(op, errType string)                     { m.Called(op, errType) }
func (m *MockMetrics) RecordTransaction(txType string, amount decimal.Decimal) {
	m.Called(txType, amount.String())
}
func (m *MockMetrics) RecordCacheHit(c string)  { m.Called(c) }
func (m *MockMetrics) RecordCacheMiss(c string) { m.Called(c) }

type fixture struct {
	svc        Service
	ledger     *memory.Ledger
	banks      *memory.Banks
	dispatcher *MockDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	ledger := memory.NewLedger()
	banks := memory.NewBanks()
	dispatcher := new(MockDispatcher)

	require.NoError(t, ledger.CreateWallet(ctx, &models.Wallet{UserID: "u1"}))

	gtb := &models.Bank{Name: "Guaranty Trust", Code: "GTB", MaxLimit: decimal.NewFromInt(100)}
	acc := &models.Bank{Name: "Access", Code: "ACC", MaxLimit: decimal.NewFromInt(50000)}
	zen := &models.Bank{Name: "Zenith", Code: "ZEN", MaxLimit: decimal.NewFromInt(50000)}
	require.NoError(t, banks.CreateBank(ctx, gtb))
	require.NoError(t, banks.CreateBank(ctx, acc))
	require.NoError(t, banks.CreateBank(ctx, zen))
	require.NoError(t, banks.LinkAccount(ctx, &models.UserBankAccount{UserID: "u1", BankID: gtb.ID, AccountNo: "1111222233", IsActive: true}))
	require.NoError(t, banks.LinkAccount(ctx, &models.UserBankAccount{UserID: "u1", BankID: acc.ID, AccountNo: "0123456789", IsActive: true}))
	require.NoError(t, banks.LinkAccount(ctx, &models.UserBankAccount{UserID: "u1", BankID: zen.ID, AccountNo: "5555666677", IsActive: false}))

	policy := limits.NewPolicy(limits.DefaultConfig(), ledger)
	svc := NewService(ledger, banks, policy, nil, dispatcher, WalletConfig{}, nil, logger.Discard())

	return &fixture{svc: svc, ledger: ledger, banks: banks, dispatcher: dispatcher}
}

func (f *fixture) balance(t *testing.T, userID string) string {
	t.Helper()
	w, err := f.ledger.FindWallet(context.Background(), userID)
	require.NoError(t, err)
	return w.Balance.String()
}

func (f *fixture) count(t *testing.T, userID string) int64 {
	t.Helper()
	_, total, err := f.ledger.ListTransactions(context.Background(), repositories.TransactionFilter{UserID: userID}, 100, 0)
	require.NoError(t, err)
	return total
}

func (f *fixture) fund(t *testing.T, userID, amount string) {
	t.Helper()
	_, err := f.svc.RecordTransaction(context.Background(), userID, RecordRequest{Amount: amount, Type: "CREDIT"})
	require.NoError(t, err)
}

func TestWalletService_RecordTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "1000", Type: "credit", Description: "salary"})
	require.NoError(t, err)
	assert.Equal(t, "1000", res.Wallet.Balance.String())
	assert.Equal(t, models.TransactionTypeCredit, res.Transaction.Type)
	assert.Equal(t, models.TransactionStatusSuccess, res.Transaction.Status)
	assert.Equal(t, "salary", res.Transaction.Description)

	res, err = f.svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "400", Type: "DEBIT"})
	require.NoError(t, err)
	assert.Equal(t, "600", res.Wallet.Balance.String())
	assert.Equal(t, res.Wallet.ID, res.Transaction.WalletID)

	_, err = f.svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "700", Type: "DEBIT"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	assert.Equal(t, "600", f.balance(t, "u1"))
	assert.EqualValues(t, 2, f.count(t, "u1"))
}

func TestWalletService_RecordTransactionRejections(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		req     RecordRequest
		wantErr error
	}{
		{
			name:    "negative amount",
			userID:  "u1",
			req:     RecordRequest{Amount: "-5", Type: "CREDIT"},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "non numeric amount",
			userID:  "u1",
			req:     RecordRequest{Amount: "ten", Type: "CREDIT"},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "unknown type",
			userID:  "u1",
			req:     RecordRequest{Amount: "500", Type: "REFUND"},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "below minimum",
			userID:  "u1",
			req:     RecordRequest{Amount: "50", Type: "CREDIT"},
			wantErr: apperrors.ErrLimitExceeded,
		},
		{
			name:    "above maximum",
			userID:  "u1",
			req:     RecordRequest{Amount: "50000.01", Type: "DEBIT"},
			wantErr: apperrors.ErrLimitExceeded,
		},
		{
			name:    "no wallet for debit",
			userID:  "ghost",
			req:     RecordRequest{Amount: "500", Type: "DEBIT"},
			wantErr: apperrors.ErrWalletNotFound,
		},
		{
			name:    "no wallet for credit",
			userID:  "ghost",
			req:     RecordRequest{Amount: "500", Type: "CREDIT"},
			wantErr: apperrors.ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.RecordTransaction(context.Background(), tt.userID, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "0", f.balance(t, "u1"))
			assert.EqualValues(t, 0, f.count(t, "u1"))
		})
	}
}

func TestWalletService_ConcurrentDebits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, "u1", "1000")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "600", Type: "DEBIT"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, "400", f.balance(t, "u1"))
	assert.EqualValues(t, 2, f.count(t, "u1"))
}

func TestWalletService_AppendFailureIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, "u1", "1000")

	f.ledger.SetAppendFault(func(models.Wallet, *models.Transaction) error { return errors.New("connection reset") })

	_, err := f.svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "400", Type: "DEBIT"})
	require.ErrorIs(t, err, apperrors.ErrInternal)
	assert.NotContains(t, err.Error(), "connection reset")

	assert.Equal(t, "1000", f.balance(t, "u1"))
	assert.EqualValues(t, 1, f.count(t, "u1"))
}

func TestWalletService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, "u1", "1000")
		f.dispatcher.On("Dispatch", mock.MatchedBy(func(task settlement.Task) bool {
			return task.BankCode == "ACC" &&
				task.Direction == models.TransactionTypeDebit &&
				task.AccountLast4 == "6789" &&
				task.Amount.Equal(decimal.NewFromInt(250))
		})).Return(nil).Once()

		res, err := f.svc.Transfer(ctx, "u1", "ACC", "250")
		require.NoError(t, err)

		assert.Equal(t, "750", res.UpdatedBalance.String())
		assert.Equal(t, models.TransactionTypeDebit, res.Transaction.Type)
		assert.Equal(t, "Transfer to Access account 6789", res.Transaction.Description)
		require.NotNil(t, res.Transaction.Counterparty)
		assert.Equal(t, "Access", *res.Transaction.Counterparty)
		require.NotNil(t, res.Transaction.BankID)
		assert.Equal(t, "750", f.balance(t, "u1"))
		f.dispatcher.AssertExpectations(t)
	})

	t.Run("bank code is case-insensitive", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, "u1", "1000")
		f.dispatcher.On("Dispatch", mock.MatchedBy(func(task settlement.Task) bool {
			return task.BankCode == "ACC"
		})).Return(nil).Once()

		res, err := f.svc.Transfer(ctx, "u1", " acc ", "200")
		require.NoError(t, err)
		assert.Equal(t, "800", res.UpdatedBalance.String())
		f.dispatcher.AssertExpectations(t)
	})

	t.Run("dispatch failure does not undo the debit", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, "u1", "1000")
		f.dispatcher.On("Dispatch", mock.Anything).Return(errors.New("queue full")).Once()

		res, err := f.svc.Transfer(ctx, "u1", "ACC", "250")
		require.NoError(t, err)
		assert.Equal(t, "750", res.UpdatedBalance.String())
	})

	rejections := []struct {
		name     string
		userID   string
		bankCode string
		amount   string
		wantErr  error
	}{
		{"invalid amount", "u1", "ACC", "0", apperrors.ErrInvalidInput},
		{"unknown bank", "u1", "XYZ", "200", apperrors.ErrBankNotFound},
		{"above bank ceiling", "u1", "GTB", "200", apperrors.ErrTransferLimitExceeded},
		{"no wallet", "ghost", "ACC", "200", apperrors.ErrWalletNotFound},
		{"more than balance", "u1", "ACC", "1000.01", apperrors.ErrInsufficientFunds},
		{"inactive link", "u1", "ZEN", "200", apperrors.ErrBankAccountNotLinked},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fund(t, "u1", "1000")

			_, err := f.svc.Transfer(ctx, tt.userID, tt.bankCode, tt.amount)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "1000", f.balance(t, "u1"))
			assert.EqualValues(t, 1, f.count(t, "u1"))
			f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
		})
	}
}

func TestWalletService_TopUp(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the wallet", func(t *testing.T) {
		f := newFixture(t)
		f.dispatcher.On("Dispatch", mock.MatchedBy(func(task settlement.Task) bool {
			return task.Direction == models.TransactionTypeCredit
		})).Return(nil).Once()

		res, err := f.svc.TopUp(ctx, "u1", "ACC", "5000")
		require.NoError(t, err)

		assert.Equal(t, "5000", res.UpdatedBalance.String())
		assert.Equal(t, models.TransactionTypeCredit, res.Transaction.Type)
		assert.Equal(t, "Top up from Access account 6789", res.Transaction.Description)
		f.dispatcher.AssertExpectations(t)
	})

	t.Run("respects the credit limits", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.TopUp(ctx, "u1", "ACC", "50")
		assert.ErrorIs(t, err, apperrors.ErrLimitExceeded)
		assert.Equal(t, "0", f.balance(t, "u1"))
	})

	t.Run("respects the bank ceiling", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.TopUp(ctx, "u1", "GTB", "200")
		assert.ErrorIs(t, err, apperrors.ErrTransferLimitExceeded)
	})

	t.Run("needs an active link", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.TopUp(ctx, "u1", "ZEN", "200")
		assert.ErrorIs(t, err, apperrors.ErrBankAccountNotLinked)
	})
}

func TestWalletService_CreateWallet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	w, err := f.svc.CreateWallet(ctx, "u2", "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCurrency, w.Currency)
	assert.True(t, w.Balance.IsZero())

	_, err = f.svc.CreateWallet(ctx, "u2", "")
	assert.ErrorIs(t, err, apperrors.ErrWalletExists)

	_, err = f.svc.CreateWallet(ctx, "u3", "usd")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWalletService_PostCommitHooks(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	require.NoError(t, ledger.CreateWallet(ctx, &models.Wallet{UserID: "u1"}))

	balances := new(MockBalanceCache)
	balances.On("SetBalance", mock.Anything, "u1", mock.Anything).Return(errors.New("redis down")).Once()
	balances.On("InvalidateBalance", mock.Anything, "u1").Return(errors.New("redis down")).Once()

	metrics := new(MockMetrics)
	metrics.On("RecordOperationDuration", OpRecordTransaction, mock.Anything).Once()
	metrics.On("RecordOperationResult", OpRecordTransaction, ResultSuccess).Once()
	metrics.On("RecordTransaction", models.TransactionTypeCredit, "500").Once()

	svc := NewService(ledger, memory.NewBanks(), limits.NewPolicy(limits.DefaultConfig(), ledger),
		balances, new(MockDispatcher), WalletConfig{}, metrics, logger.Discard())

	// A cache failure is logged, not surfaced.
	res, err := svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "500", Type: "CREDIT"})
	require.NoError(t, err)
	assert.Equal(t, "500", res.Wallet.Balance.String())

	balances.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestWalletService_CommitWritesCommittedBalance(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	require.NoError(t, ledger.CreateWallet(ctx, &models.Wallet{UserID: "u1"}))

	balances := new(MockBalanceCache)
	balances.On("SetBalance", mock.Anything, "u1", mock.MatchedBy(func(b cache.Balance) bool {
		return b.Balance.Equal(decimal.NewFromInt(700)) && b.Currency == models.DefaultCurrency
	})).Return(nil).Once()

	svc := NewService(ledger, memory.NewBanks(), limits.NewPolicy(limits.DefaultConfig(), ledger),
		balances, new(MockDispatcher), WalletConfig{}, nil, logger.Discard())

	_, err := svc.RecordTransaction(ctx, "u1", RecordRequest{Amount: "700", Type: "CREDIT"})
	require.NoError(t, err)

	balances.AssertExpectations(t)
	balances.AssertNotCalled(t, "InvalidateBalance", mock.Anything, mock.Anything)
}

func TestWalletService_RejectionMetrics(t *testing.T) {
	ledger := memory.NewLedger()
	metrics := new(MockMetrics)
	metrics.On("RecordOperationDuration", OpRecordTransaction, mock.Anything).Once()
	metrics.On("RecordOperationResult", OpRecordTransaction, ResultRejected).Once()
	metrics.On("RecordError", OpRecordTransaction, apperrors.ErrInvalidInput.Code).Once()

	svc := NewService(ledger, memory.NewBanks(), limits.NewPolicy(limits.DefaultConfig(), ledger),
		nil, new(MockDispatcher), WalletConfig{}, metrics, logger.Discard())

	_, err := svc.RecordTransaction(context.Background(), "u1", RecordRequest{Amount: "x", Type: "CREDIT"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	metrics.AssertExpectations(t)
}

func TestNewService_PanicsWithoutLedger(t *testing.T) {
	assert.Panics(t, func() {
		NewService(nil, memory.NewBanks(), nil, nil, nil, WalletConfig{}, nil, nil)
	})
}
