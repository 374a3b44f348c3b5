// Package query serves the read side of the ledger: balances and the
// paginated transaction history. Nothing here mutates state.
package query

import (
	"context"
	"errors"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories"
	"github.com/llshivamsinghll/bank-wallet/internal/repositories/cache"
	"github.com/llshivamsinghll/bank-wallet/internal/services/wallet"
	"github.com/llshivamsinghll/bank-wallet/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const balanceCacheName = "balance"

type Service interface {
	ListTransactions(ctx context.Context, userID string, filter Filter, page, pageSize int) (*Page, error)
	GetBalance(ctx context.Context, userID string) (*Balance, error)
}

type Page struct {
	Items []models.Transaction `json:"transactions"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Pages int                  `json:"pages"`
}

type Balance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type service struct {
	ledger   repositories.LedgerRepository
	balances cache.BalanceCache
	metrics  wallet.MetricsCollector
	log      logrus.FieldLogger
}

func NewService(ledger repositories.LedgerRepository, balances cache.BalanceCache, metrics wallet.MetricsCollector, log logrus.FieldLogger) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if balances == nil {
		balances = cache.NoopBalanceCache{}
	}
	if metrics == nil {
		metrics = &wallet.NoopMetricsCollector{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{ledger: ledger, balances: balances, metrics: metrics, log: log}
}

func (s *service) ListTransactions(ctx context.Context, userID string, filter Filter, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, total, err := s.ledger.ListTransactions(ctx, repositories.TransactionFilter{
		UserID: userID,
		Type:   filter.Type,
		From:   filter.StartDate,
		To:     filter.EndDate,
	}, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, s.internal("list_transactions", userID, err)
	}
	if items == nil {
		items = []models.Transaction{}
	}

	return &Page{
		Items: items,
		Total: total,
		Page:  page,
		Limit: pageSize,
		Pages: utils.TotalPages(total, pageSize),
	}, nil
}

// GetBalance reads through the balance cache. Cache errors degrade to a
// ledger read.
func (s *service) GetBalance(ctx context.Context, userID string) (*Balance, error) {
	cached, found, err := s.balances.GetBalance(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("balance cache read failed")
	}
	if found {
		s.metrics.RecordCacheHit(balanceCacheName)
		return &Balance{Balance: cached.Balance, Currency: cached.Currency}, nil
	}
	s.metrics.RecordCacheMiss(balanceCacheName)

	w, err := s.ledger.FindWallet(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, s.internal("get_balance", userID, err)
	}

	// Fill only; a commit that landed after our read has already written a
	// newer value.
	if err := s.balances.FillBalance(ctx, userID, cache.Balance{Balance: w.Balance, Currency: w.Currency}); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("balance cache write failed")
	}
	return &Balance{Balance: w.Balance, Currency: w.Currency}, nil
}

func (s *service) internal(op, userID string, err error) error {
	s.log.WithFields(logrus.Fields{
		"operation": op,
		"user_id":   userID,
		"error":     err.Error(),
	}).Error("query failed")
	return apperrors.ErrInternal
}
