package wallet

import (
	"context"

	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/services/settlement"

	"github.com/shopspring/decimal"
)

// Service is the transaction engine. Every method takes the authenticated
// user ID; it never reads identity from the context.
type Service interface {
	// CreateWallet opens an empty wallet for the user.
	CreateWallet(ctx context.Context, userID, currency string) (*models.Wallet, error)

	// RecordTransaction applies a CREDIT or DEBIT after the limit check.
	RecordTransaction(ctx context.Context, userID string, req RecordRequest) (*RecordResult, error)

	// Transfer sends funds from the wallet to the user's linked account at
	// bankCode.
	Transfer(ctx context.Context, userID, bankCode, amount string) (*TransferResult, error)

	// TopUp pulls funds from the user's linked account at bankCode into the
	// wallet.
	TopUp(ctx context.Context, userID, bankCode, amount string) (*TransferResult, error)
}

// LimitChecker gates an amount before it reaches the ledger.
type LimitChecker interface {
	Check(ctx context.Context, userID string, amount decimal.Decimal, txType string) error
}

// SettlementDispatcher receives the bank leg of a committed transfer or
// top-up. Dispatch must not block on the bank.
type SettlementDispatcher interface {
	Dispatch(task settlement.Task) error
}
