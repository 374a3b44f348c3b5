package validation

import (
	"regexp"
	"strings"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return apperrors.ErrInvalidInput.WithMessage("invalid email")
	}
	return nil
}

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return apperrors.ErrInvalidInput.WithMessage("password must be at least 8 characters")
	case len(password) > MaxPasswordLength:
		return apperrors.ErrInvalidInput.WithMessage("password is too long")
	case !HasSpecialChar(password):
		return apperrors.ErrInvalidInput.WithMessage("password must contain a special character")
	}
	return nil
}

// ValidateAccountNo accepts a numeric account number of at least four
// digits.
func ValidateAccountNo(accountNo string) error {
	accountNo = strings.TrimSpace(accountNo)
	if len(accountNo) < 4 || len(accountNo) > MaxAccountNoLength || !digitsOnly.MatchString(accountNo) {
		return apperrors.ErrInvalidInput.WithMessage("account number must be 4 to 34 digits")
	}
	return nil
}
