package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"

	"github.com/google/uuid"
)

type Banks struct {
	mu       sync.RWMutex
	banks    map[string]models.Bank // by code
	accounts []models.UserBankAccount
}

var _ repositories.BankRepository = (*Banks)(nil)

func NewBanks() *Banks {
	return &Banks{banks: make(map[string]models.Bank)}
}

func (b *Banks) CreateBank(ctx context.Context, bank *models.Bank) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.banks[bank.Code]; ok {
		return apperrors.ErrBankExists
	}
	if bank.ID == "" {
		bank.ID = uuid.NewString()
	}
	bank.CreatedAt = time.Now()
	b.banks[bank.Code] = *bank
	return nil
}

func (b *Banks) FindBankByCode(ctx context.Context, code string) (*models.Bank, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bank, ok := b.banks[code]
	if !ok {
		return nil, apperrors.ErrBankNotFound
	}
	return &bank, nil
}

func (b *Banks) ListBanks(ctx context.Context) ([]models.Bank, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	banks := make([]models.Bank, 0, len(b.banks))
	for _, bank := range b.banks {
		banks = append(banks, bank)
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].Name < banks[j].Name })
	return banks, nil
}

func (b *Banks) LinkAccount(ctx context.Context, account *models.UserBankAccount) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, a := range b.accounts {
		if a.UserID == account.UserID && a.BankID == account.BankID && a.AccountNo == account.AccountNo {
			return apperrors.ErrInvalidInput.WithMessage("bank account already linked")
		}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt = time.Now()
	b.accounts = append(b.accounts, *account)
	return nil
}

func (b *Banks) FindActiveLink(ctx context.Context, userID, bankID string) (*models.UserBankAccount, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, a := range b.accounts {
		if a.UserID == userID && a.BankID == bankID && a.IsActive {
			account := a
			return &account, nil
		}
	}
	return nil, apperrors.ErrBankAccountNotLinked
}
