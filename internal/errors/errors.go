// Package errors defines the typed failures surfaced by the wallet engine.
// Callers match them with the standard errors.Is; a DomainError matches any
// other DomainError carrying the same Code, so a reasoned limit failure still
// matches ErrLimitExceeded.
package errors

import "fmt"

type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Reason)
	}
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithReason returns a copy of e annotated with reason.
func (e *DomainError) WithReason(reason string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Reason: reason}
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg, Reason: e.Reason}
}
