package wallet

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/services/settlement"
	"github.com/llshivamsinghll/bank-wallet/internal/validation"

	"github.com/sirupsen/logrus"
)

func (s *service) Transfer(ctx context.Context, userID, bankCode, amount string) (*TransferResult, error) {
	start := time.Now()
	res, err := s.moveFunds(ctx, OpTransfer, userID, bankCode, amount, models.TransactionTypeDebit)
	return res, s.finish(OpTransfer, start, err)
}

func (s *service) TopUp(ctx context.Context, userID, bankCode, amount string) (*TransferResult, error) {
	start := time.Now()
	res, err := s.moveFunds(ctx, OpTopUp, userID, bankCode, amount, models.TransactionTypeCredit)
	return res, s.finish(OpTopUp, start, err)
}

// moveFunds runs the bank protocol. A DEBIT sends money out to the linked
// account; a CREDIT brings it in and is subject to the credit limits.
func (s *service) moveFunds(ctx context.Context, op, userID, bankCode, rawAmount, txType string) (*TransferResult, error) {
	amount, err := validation.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	bank, err := s.banks.FindBankByCode(ctx, validation.NormalizeBankCode(bankCode))
	if err != nil {
		return nil, s.classify(op, userID, err)
	}
	if amountExceeds(amount, bank.MaxLimit) {
		return nil, apperrors.ErrTransferLimitExceeded
	}

	wallet, err := s.ledger.FindWallet(ctx, userID)
	if err != nil {
		return nil, s.classify(op, userID, err)
	}
	// Early rejection only; ApplyAtomic re-checks under the row lock.
	if txType == models.TransactionTypeDebit && amountExceeds(amount, wallet.Balance) {
		return nil, apperrors.ErrInsufficientFunds
	}

	account, err := s.banks.FindActiveLink(ctx, userID, bank.ID)
	if err != nil {
		return nil, s.classify(op, userID, err)
	}

	description := fmt.Sprintf(transferDescription, bank.Name, account.Last4())
	if txType == models.TransactionTypeCredit {
		if err := s.limits.Check(ctx, userID, amount, txType); err != nil {
			return nil, s.classify(op, userID, err)
		}
		description = fmt.Sprintf(topUpDescription, bank.Name, account.Last4())
	}

	counterparty := bank.Name
	bankID := bank.ID
	entry := &models.Transaction{
		Amount:       amount,
		Type:         txType,
		Description:  description,
		Counterparty: &counterparty,
		BankID:       &bankID,
		Metadata: models.JSON{
			"bankCode":     bank.Code,
			"accountLast4": account.Last4(),
		},
	}

	updated, tx, err := s.commit(ctx, op, userID, entry)
	if err != nil {
		return nil, err
	}

	task := settlement.Task{
		TransactionID: tx.ID,
		UserID:        userID,
		BankCode:      bank.Code,
		AccountLast4:  account.Last4(),
		Direction:     txType,
		Amount:        amount,
	}
	if err := s.settlement.Dispatch(task); err != nil {
		// The ledger entry stands whether or not the bank leg is queued.
		s.log.WithFields(logrus.Fields{
			"operation":      op,
			"transaction_id": tx.ID,
			"error":          err.Error(),
		}).Error("failed to dispatch settlement")
	}

	return &TransferResult{Transaction: tx, UpdatedBalance: updated.Balance}, nil
}
