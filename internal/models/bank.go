package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Bank struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Code      string          `gorm:"uniqueIndex;not null" json:"code"`
	MaxLimit  decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"maxLimit"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// UserBankAccount links a user to an external account at a bank.
type UserBankAccount struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_bank_account;not null" json:"userId"`
	BankID    string    `gorm:"uniqueIndex:idx_user_bank_account;not null" json:"bankId"`
	AccountNo string    `gorm:"uniqueIndex:idx_user_bank_account;not null" json:"accountNo"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *UserBankAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Last4 returns the trailing four characters of the account number.
func (a *UserBankAccount) Last4() string {
	if len(a.AccountNo) <= 4 {
		return a.AccountNo
	}
	return a.AccountNo[len(a.AccountNo)-4:]
}
