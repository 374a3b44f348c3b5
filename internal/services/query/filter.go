package query

import (
	"strings"
	"time"

	apperrors "github.com/llshivamsinghll/bank-wallet/internal/errors"
	"github.com/llshivamsinghll/bank-wallet/internal/validation"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const dateOnly = "2006-01-02"

// Filter narrows a transaction listing. Nil fields are unrestricted.
type Filter struct {
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

// ParseFilter builds a Filter from raw query values. Dates may be RFC3339
// timestamps or calendar dates; a calendar end date covers the whole day.
func ParseFilter(txType, startDate, endDate string, loc *time.Location) (Filter, error) {
	var f Filter
	if loc == nil {
		loc = time.Local
	}

	if strings.TrimSpace(txType) != "" {
		t, err := validation.NormalizeTransactionType(txType)
		if err != nil {
			return Filter{}, err
		}
		f.Type = t
	}

	if startDate != "" {
		start, _, err := parseDate(startDate, loc)
		if err != nil {
			return Filter{}, apperrors.ErrInvalidInput.WithMessage("invalid startDate")
		}
		f.StartDate = &start
	}

	if endDate != "" {
		end, dayOnly, err := parseDate(endDate, loc)
		if err != nil {
			return Filter{}, apperrors.ErrInvalidInput.WithMessage("invalid endDate")
		}
		if dayOnly {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.EndDate = &end
	}

	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return Filter{}, apperrors.ErrInvalidInput.WithMessage("endDate is before startDate")
	}
	return f, nil
}

func parseDate(raw string, loc *time.Location) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(dateOnly, raw, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
