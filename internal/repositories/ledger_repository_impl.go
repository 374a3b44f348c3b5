package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrWalletExists
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) FindWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) ApplyAtomic(ctx context.Context, userID string, delta decimal.Decimal, entry *models.Transaction) (*models.Wallet, *models.Transaction, error) {
	var wallet models.Wallet

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE holds the row until commit, so concurrent
		// applies on one wallet see each other's balance.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&wallet).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWalletNotFound
			}
			return fmt.Errorf("failed to lock wallet: %w", err)
		}

		next := wallet.Balance.Add(delta)
		if next.IsNegative() {
			return apperrors.ErrInsufficientFunds
		}

		if err := tx.Model(&wallet).Update("balance", next).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		wallet.Balance = next

		entry.WalletID = wallet.ID
		entry.UserID = userID
		entry.Status = models.TransactionStatusSuccess
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &wallet, entry, nil
}

func (r *ledgerRepository) Aggregate(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND status = ?", userID, txType, models.TransactionStatusSuccess).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	return total, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, filter TransactionFilter, limit, offset int) ([]models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", filter.UserID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}
