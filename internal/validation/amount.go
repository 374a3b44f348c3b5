package validation

import (
	"regexp"
	"strings"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/models"

	"github.com/shopspring/decimal"
)

// plainAmount fits numeric(20,2). Exponent notation is refused so the
// decimal never carries an unbounded scale.
var plainAmount = regexp.MustCompile(`^\d{1,18}(\.\d+)?$`)

// ParseAmount parses raw as a strictly positive decimal with at most two
// fractional digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, apperrors.ErrInvalidInput.WithMessage("amount is required")
	}
	if !plainAmount.MatchString(raw) {
		return decimal.Zero, apperrors.ErrInvalidInput.WithMessage("amount must be a plain positive number")
	}
	if i := strings.IndexByte(raw, '.'); i >= 0 && len(raw)-i-1 > AmountScale {
		return decimal.Zero, apperrors.ErrInvalidInput.WithMessage("amount has too many decimal places")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.ErrInvalidInput.WithMessage("amount must be a number")
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidInput.WithMessage("amount must be greater than 0")
	}
	return amount, nil
}

// NormalizeBankCode upper-cases and trims a bank code so lookups match the
// stored form.
func NormalizeBankCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeTransactionType upper-cases t and checks it is a ledger type.
func NormalizeTransactionType(t string) (string, error) {
	t = strings.ToUpper(strings.TrimSpace(t))
	if !models.IsValidTransactionType(t) {
		return "", apperrors.ErrInvalidInput.WithMessage("type must be CREDIT or DEBIT")
	}
	return t, nil
}

func ValidateDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return apperrors.ErrInvalidInput.WithMessage("description is too long")
	}
	return nil
}
