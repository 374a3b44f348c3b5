package wallet

// Operation names used in logs and metrics.
const (
	OpCreateWallet      = "create_wallet"
	OpRecordTransaction = "record_transaction"
	OpTransfer          = "transfer"
	OpTopUp             = "topup"
)

// Operation results
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

const (
	transferDescription = "Transfer to %s account %s"
	topUpDescription    = "Top up from %s account %s"
)
