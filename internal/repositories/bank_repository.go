package repositories

import (
	"context"

	"github.com/llshivamsinghll/bank-wallet/internal/models"
)

// BankRepository is the bank registry together with the user account links
// that authorize transfers and top-ups.
type BankRepository interface {
	CreateBank(ctx context.Context, bank *models.Bank) error
	FindBankByCode(ctx context.Context, code string) (*models.Bank, error)
	ListBanks(ctx context.Context) ([]models.Bank, error)

	LinkAccount(ctx context.Context, account *models.UserBankAccount) error
	// FindActiveLink returns the user's active account at bankID or
	// ErrBankAccountNotLinked.
	FindActiveLink(ctx context.Context, userID, bankID string) (*models.UserBankAccount, error)
}
