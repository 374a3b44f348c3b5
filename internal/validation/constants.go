package validation

const (
	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxDescriptionLength = 500
	MaxAccountNoLength   = 34

	// Money is kept to two decimal places.
	AmountScale = 2
)
