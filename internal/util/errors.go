// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input provided")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUserNotFound         = errors.New("user not found")
	ErrStatementNotFound    = errors.New("statement not found")
	ErrDuplicateEntry       = errors.New("duplicate entry") // For cases like creating a user with an existing email
	ErrIncorrectCredentials = errors.New("incorrect email or password")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
