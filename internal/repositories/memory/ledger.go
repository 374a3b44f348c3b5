// Package memory is an in-process implementation of the repositories. It
// keeps the same atomicity guarantees as the Postgres store and backs the
// memory storage driver and the service tests.
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
	"github.com/shopspring/decimal"
)

// AppendFault runs after the new balance has been staged on the wallet and
// before the entry is appended. staged is the wallet as it would be
// committed. A non-nil error rolls the wallet back and is returned from
// ApplyAtomic.
type AppendFault func(staged models.Wallet, entry *models.Transaction) error

type Ledger struct {
	// mu guards wallets and txs. Per-wallet locks serialize writers of a
	// single wallet; mu only makes the commit visible in one step.
	mu      sync.RWMutex
	wallets map[string]*walletSlot
	txs     []models.Transaction

	now   func() time.Time
	fault AppendFault
}

type walletSlot struct {
	lock   sync.Mutex
	wallet models.Wallet
}

var _ repositories.LedgerRepository = (*Ledger)(nil)

func NewLedger() *Ledger {
	return &Ledger{
		wallets: make(map[string]*walletSlot),
		now:     time.Now,
	}
}

// SetClock replaces the time source used to stamp new rows.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// SetAppendFault installs fn as the append hook; nil removes it.
func (l *Ledger) SetAppendFault(fn AppendFault) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fault = fn
}

func (l *Ledger) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.wallets[wallet.UserID]; ok {
		return apperrors.ErrWalletExists
	}
	if wallet.ID == "" {
		wallet.ID = uuid.NewString()
	}
	if wallet.Currency == "" {
		wallet.Currency = models.DefaultCurrency
	}
	now := l.now()
	wallet.Balance = decimal.Zero
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	l.wallets[wallet.UserID] = &walletSlot{wallet: *wallet}
	return nil
}

func (l *Ledger) FindWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	slot, ok := l.wallets[userID]
	if !ok {
		return nil, apperrors.ErrWalletNotFound
	}
	w := slot.wallet
	return &w, nil
}

func (l *Ledger) ApplyAtomic(ctx context.Context, userID string, delta decimal.Decimal, entry *models.Transaction) (*models.Wallet, *models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	l.mu.RLock()
	slot, ok := l.wallets[userID]
	l.mu.RUnlock()
	if !ok {
		return nil, nil, apperrors.ErrWalletNotFound
	}

	slot.lock.Lock()
	defer slot.lock.Unlock()

	// Only writers of this wallet mutate slot.wallet, and they hold
	// slot.lock, so the balance read here is current.
	next := slot.wallet.Balance.Add(delta)
	if next.IsNegative() {
		return nil, nil, apperrors.ErrInsufficientFunds
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	prev := slot.wallet
	slot.wallet.Balance = next
	slot.wallet.UpdatedAt = now

	if l.fault != nil {
		if err := l.fault(slot.wallet, entry); err != nil {
			slot.wallet = prev
			return nil, nil, err
		}
	}

	row := *entry
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.WalletID = slot.wallet.ID
	row.UserID = userID
	row.Status = models.TransactionStatusSuccess
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	l.txs = append(l.txs, row)

	*entry = row
	w := slot.wallet
	return &w, &row, nil
}

func (l *Ledger) Aggregate(ctx context.Context, userID, txType string, from, to time.Time) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, tx := range l.txs {
		if tx.UserID != userID || tx.Type != txType || tx.Status != models.TransactionStatusSuccess {
			continue
		}
		if tx.CreatedAt.Before(from) || tx.CreatedAt.After(to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}

func (l *Ledger) ListTransactions(ctx context.Context, filter repositories.TransactionFilter, limit, offset int) ([]models.Transaction, int64, error) {
	l.mu.RLock()
	matched := make([]models.Transaction, 0)
	for _, tx := range l.txs {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, tx)
	}
	l.mu.RUnlock()

	// txs is in append order; reverse it so ties on CreatedAt still come
	// back newest first.
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.Transaction{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}
