package errors

// Limit failure reasons carried by ErrLimitExceeded.
const (
	ReasonBelowMinimum = "below_minimum"
	ReasonAboveMaximum = "above_maximum"
	ReasonDaily        = "daily"
	ReasonMonthly      = "monthly"
	ReasonMaxBalance   = "max_balance"
)

var (
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWalletExists = &DomainError{
		Code:    "WALLET_EXISTS",
		Message: "wallet already exists",
	}
	ErrBankNotFound = &DomainError{
		Code:    "BANK_NOT_FOUND",
		Message: "bank not found",
	}
	ErrBankExists = &DomainError{
		Code:    "BANK_EXISTS",
		Message: "bank already exists",
	}
	ErrBankAccountNotLinked = &DomainError{
		Code:    "BANK_ACCOUNT_NOT_LINKED",
		Message: "no active bank account linked",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient wallet balance",
	}
	ErrLimitExceeded = &DomainError{
		Code:    "LIMIT_EXCEEDED",
		Message: "transaction limit exceeded",
	}
	ErrTransferLimitExceeded = &DomainError{
		Code:    "TRANSFER_LIMIT_EXCEEDED",
		Message: "amount exceeds bank transfer limit",
	}
	ErrInternal = &DomainError{
		Code:    "INTERNAL",
		Message: "internal error",
	}
)
