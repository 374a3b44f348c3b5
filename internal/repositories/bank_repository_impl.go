package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"

	"gorm.io/gorm"
)

type bankRepository struct {
	db *gorm.DB
}

func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepository{db: db}
}

func (r *bankRepository) CreateBank(ctx context.Context, bank *models.Bank) error {
	if err := r.db.WithContext(ctx).Create(bank).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrBankExists
		}
		return fmt.Errorf("failed to create bank: %w", err)
	}
	return nil
}

func (r *bankRepository) FindBankByCode(ctx context.Context, code string) (*models.Bank, error) {
	var bank models.Bank
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&bank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to get bank: %w", err)
	}
	return &bank, nil
}

func (r *bankRepository) ListBanks(ctx context.Context) ([]models.Bank, error) {
	var banks []models.Bank
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&banks).Error; err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

func (r *bankRepository) LinkAccount(ctx context.Context, account *models.UserBankAccount) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrInvalidInput.WithMessage("bank account already linked")
		}
		return fmt.Errorf("failed to link bank account: %w", err)
	}
	return nil
}

func (r *bankRepository) FindActiveLink(ctx context.Context, userID, bankID string) (*models.UserBankAccount, error) {
	var account models.UserBankAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bank_id = ? AND is_active = ?", userID, bankID, true).
		Order("created_at ASC").
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankAccountNotLinked
		}
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	return &account, nil
}
