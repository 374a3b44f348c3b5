package repositories

import (
	"context"
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Zero values mean no
// restriction.
type TransactionFilter struct {
	UserID string
	Type   string
	From   *time.Time
	To     *time.Time
}

// LedgerRepository is the only path that mutates a wallet balance.
type LedgerRepository interface {
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	FindWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// ApplyAtomic adds delta to the user's balance and appends entry in a
	// single unit of work. It fails with ErrWalletNotFound when the user has
	// no wallet and ErrInsufficientFunds when the result would be negative;
	// on any failure neither the balance nor the entry is persisted. Calls on
	// the same wallet are serialized.
	ApplyAtomic(ctx context.Context, userID string, delta decimal.Decimal, entry *models.Transaction) (*models.Wallet, *models.Transaction, error)

	// Aggregate sums successful entries of txType created in [from, to].
	Aggregate(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error)

	// ListTransactions returns a newest-first page and the total match count.
	ListTransactions(ctx context.Context, filter TransactionFilter, limit, offset int) ([]models.Transaction, int64, error)
}
