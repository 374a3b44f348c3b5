package errors

var (
	ErrUserExists = &DomainError{
		Code:    "USER_EXISTS",
		Message: "user already exists",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid credentials",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
)
