package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypeCredit = "CREDIT"
	TransactionTypeDebit  = "DEBIT"
)

// Transaction statuses
const (
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// Transaction is an immutable ledger entry. Rows are inserted by the ledger
// store together with the balance change they describe and never updated.
type Transaction struct {
	ID           string          `gorm:"primaryKey;type:uuid" json:"id"`
	WalletID     string          `gorm:"index;not null" json:"walletId"`
	UserID       string          `gorm:"index:idx_tx_user_created,priority:1;not null" json:"userId"`
	Amount       decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Type         string          `gorm:"not null" json:"type"`
	Status       string          `gorm:"not null;default:'SUCCESS'" json:"status"`
	Description  string          `json:"description"`
	Counterparty *string         `json:"counterparty,omitempty"`
	BankID       *string         `gorm:"index" json:"bankId,omitempty"`
	Metadata     JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time       `gorm:"index:idx_tx_user_created,priority:2" json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsValidTransactionType reports whether txType is one of the ledger types.
func IsValidTransactionType(txType string) bool {
	return txType == TransactionTypeCredit || txType == TransactionTypeDebit
}

// Signed returns the amount with the sign it applies to the wallet balance.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
