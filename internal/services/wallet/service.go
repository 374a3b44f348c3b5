package wallet

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/cache"
	"github.com/llshivamsinghll/bank-wallet/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	ledger     repositories.LedgerRepository
	banks      repositories.BankRepository
	limits     LimitChecker
	balances   cache.BalanceCache
	settlement SettlementDispatcher
	config     WalletConfig
	metrics    MetricsCollector
	log        logrus.FieldLogger
}

// NewService creates a new wallet service
func NewService(
	ledger repositories.LedgerRepository,
	banks repositories.BankRepository,
	limits LimitChecker,
	balances cache.BalanceCache,
	settlement SettlementDispatcher,
	config WalletConfig,
	metrics MetricsCollector,
	log logrus.FieldLogger,
) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if banks == nil {
		panic("bank repository is required")
	}
	if limits == nil {
		panic("limit checker is required")
	}
	if settlement == nil {
		panic("settlement dispatcher is required")
	}

	if config.DefaultCurrency == "" {
		config.DefaultCurrency = models.DefaultCurrency
	}
	if balances == nil {
		balances = cache.NoopBalanceCache{}
	}
	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &service{
		ledger:     ledger,
		banks:      banks,
		limits:     limits,
		balances:   balances,
		settlement: settlement,
		config:     config,
		metrics:    metrics,
		log:        log,
	}
}

func (s *service) CreateWallet(ctx context.Context, userID, currency string) (*models.Wallet, error) {
	start := time.Now()

	if strings.TrimSpace(userID) == "" {
		return nil, s.finish(OpCreateWallet, start, apperrors.ErrInvalidInput.WithMessage("user id is required"))
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = s.config.DefaultCurrency
	}
	// Single-currency ledger.
	if currency != s.config.DefaultCurrency {
		return nil, s.finish(OpCreateWallet, start, apperrors.ErrInvalidInput.WithMessage("unsupported currency"))
	}

	wallet := &models.Wallet{UserID: userID, Currency: currency}
	if err := s.ledger.CreateWallet(ctx, wallet); err != nil {
		return nil, s.finish(OpCreateWallet, start, s.classify(OpCreateWallet, userID, err))
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"wallet_id": wallet.ID,
	}).Info("wallet created")
	return wallet, s.finish(OpCreateWallet, start, nil)
}

func (s *service) RecordTransaction(ctx context.Context, userID string, req RecordRequest) (*RecordResult, error) {
	start := time.Now()

	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return nil, s.finish(OpRecordTransaction, start, err)
	}
	txType, err := validation.NormalizeTransactionType(req.Type)
	if err != nil {
		return nil, s.finish(OpRecordTransaction, start, err)
	}
	if err := validation.ValidateDescription(req.Description); err != nil {
		return nil, s.finish(OpRecordTransaction, start, err)
	}

	if err := s.limits.Check(ctx, userID, amount, txType); err != nil {
		return nil, s.finish(OpRecordTransaction, start, s.classify(OpRecordTransaction, userID, err))
	}

	entry := &models.Transaction{
		Amount:      amount,
		Type:        txType,
		Description: req.Description,
	}
	wallet, tx, err := s.commit(ctx, OpRecordTransaction, userID, entry)
	if err != nil {
		return nil, s.finish(OpRecordTransaction, start, err)
	}

	return &RecordResult{Transaction: tx, Wallet: wallet}, s.finish(OpRecordTransaction, start, nil)
}

// commit applies entry through the ledger and runs the post-commit steps
// shared by all operations.
func (s *service) commit(ctx context.Context, op, userID string, entry *models.Transaction) (*models.Wallet, *models.Transaction, error) {
	wallet, tx, err := s.ledger.ApplyAtomic(ctx, userID, entry.Signed(), entry)
	if err != nil {
		return nil, nil, s.classify(op, userID, err)
	}

	s.refreshBalance(ctx, userID, wallet)
	s.metrics.RecordTransaction(tx.Type, tx.Amount)

	s.log.WithFields(logrus.Fields{
		"operation":      op,
		"user_id":        userID,
		"transaction_id": tx.ID,
		"type":           tx.Type,
		"amount":         tx.Amount.String(),
		"balance":        wallet.Balance.String(),
	}).Info("transaction committed")

	return wallet, tx, nil
}

// refreshBalance writes the committed balance to the cache. If that fails
// the key is dropped so readers fall through to the ledger.
func (s *service) refreshBalance(ctx context.Context, userID string, wallet *models.Wallet) {
	err := s.balances.SetBalance(ctx, userID, cache.Balance{Balance: wallet.Balance, Currency: wallet.Currency})
	if err == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"error":   err.Error(),
	}).Warn("failed to write balance cache")

	if err := s.balances.InvalidateBalance(ctx, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("failed to invalidate balance cache")
	}
}

// classify passes domain failures through and turns anything else into an
// opaque internal error after logging the cause.
func (s *service) classify(op, userID string, err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	s.log.WithFields(logrus.Fields{
		"operation": op,
		"user_id":   userID,
		"error":     err.Error(),
	}).Error("wallet operation failed")
	return apperrors.ErrInternal
}

// finish records the outcome of op and returns err unchanged.
func (s *service) finish(op string, start time.Time, err error) error {
	s.metrics.RecordOperationDuration(op, time.Since(start))

	switch {
	case err == nil:
		s.metrics.RecordOperationResult(op, ResultSuccess)
	case errors.Is(err, apperrors.ErrInternal):
		s.metrics.RecordOperationResult(op, ResultFailed)
		s.metrics.RecordError(op, apperrors.ErrInternal.Code)
	default:
		s.metrics.RecordOperationResult(op, ResultRejected)
		var de *apperrors.DomainError
		if errors.As(err, &de) {
			s.metrics.RecordError(op, de.Code)
		}
	}
	return err
}

func amountExceeds(amount, ceiling decimal.Decimal) bool {
	return amount.GreaterThan(ceiling)
}
