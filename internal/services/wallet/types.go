package wallet

import (
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/models"

	"github.com/shopspring/decimal"
)

type RecordRequest struct {
	Amount      string
	Type        string
	Description string
}

type RecordResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Wallet      *models.Wallet      `json:"wallet"`
}

type TransferResult struct {
	Transaction    *models.Transaction `json:"transaction"`
	UpdatedBalance decimal.Decimal     `json:"updatedBalance"`
}

// WalletConfig holds configuration for wallet operations
type WalletConfig struct {
	DefaultCurrency string
}

// MetricsCollector defines the interface for collecting wallet metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, errType string)
	RecordTransaction(txType string, amount decimal.Decimal)
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
}
