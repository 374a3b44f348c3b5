// Package bank manages the bank registry and the user account links that
// authorize transfers and top-ups.
package bank

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/validation"

	"github.com/sirupsen/logrus"
)

type Service interface {
	CreateBank(ctx context.Context, req CreateBankRequest) (*models.Bank, error)
	ListBanks(ctx context.Context) ([]models.Bank, error)
	// LinkAccount records an active account at bankCode for a user who
	// already has a wallet.
	LinkAccount(ctx context.Context, userID, bankCode, accountNo string) (*models.UserBankAccount, error)
}

type CreateBankRequest struct {
	Name     string
	Code     string
	MaxLimit string
}

// WalletFinder is the slice of the ledger used to confirm a wallet exists.
type WalletFinder interface {
	FindWallet(ctx context.Context, userID string) (*models.Wallet, error)
}

type service struct {
	banks   repositories.BankRepository
	wallets WalletFinder
	log     logrus.FieldLogger
}

func NewService(banks repositories.BankRepository, wallets WalletFinder, log logrus.FieldLogger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{banks: banks, wallets: wallets, log: log}
}

func (s *service) CreateBank(ctx context.Context, req CreateBankRequest) (*models.Bank, error) {
	name := strings.TrimSpace(req.Name)
	code := validation.NormalizeBankCode(req.Code)
	if name == "" || code == "" || strings.TrimSpace(req.MaxLimit) == "" {
		return nil, apperrors.ErrInvalidInput.WithMessage("name, code and maxLimit are required")
	}
	maxLimit, err := validation.ParseAmount(req.MaxLimit)
	if err != nil {
		return nil, err
	}

	bank := &models.Bank{Name: name, Code: code, MaxLimit: maxLimit}
	if err := s.banks.CreateBank(ctx, bank); err != nil {
		return nil, s.wrap("create_bank", err)
	}

	s.log.WithFields(logrus.Fields{"bank_id": bank.ID, "code": bank.Code}).Info("bank created")
	return bank, nil
}

func (s *service) ListBanks(ctx context.Context) ([]models.Bank, error) {
	banks, err := s.banks.ListBanks(ctx)
	if err != nil {
		return nil, s.wrap("list_banks", err)
	}
	return banks, nil
}

func (s *service) LinkAccount(ctx context.Context, userID, bankCode, accountNo string) (*models.UserBankAccount, error) {
	accountNo = strings.TrimSpace(accountNo)
	if err := validation.ValidateAccountNo(accountNo); err != nil {
		return nil, err
	}

	if _, err := s.wallets.FindWallet(ctx, userID); err != nil {
		return nil, s.wrap("link_account", err)
	}
	bank, err := s.banks.FindBankByCode(ctx, validation.NormalizeBankCode(bankCode))
	if err != nil {
		return nil, s.wrap("link_account", err)
	}

	account := &models.UserBankAccount{
		UserID:    userID,
		BankID:    bank.ID,
		AccountNo: accountNo,
		IsActive:  true,
	}
	if err := s.banks.LinkAccount(ctx, account); err != nil {
		return nil, s.wrap("link_account", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"bank":    bank.Code,
		"account": account.Last4(),
	}).Info("bank account linked")
	return account, nil
}

func (s *service) wrap(op string, err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	s.log.WithFields(logrus.Fields{"operation": op, "error": err.Error()}).Error("bank operation failed")
	return apperrors.ErrInternal
}
