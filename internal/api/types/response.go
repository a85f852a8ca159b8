// internal/api/types/response.go
package types

import (
	"finledger/internal/domain"

	"github.com/shopspring/decimal"
)

// BalanceResponse is the balance view: the full statement sequence,
// oldest first, plus the balance derived from it.
type BalanceResponse struct {
	Statement []domain.Statement `json:"statement"`
	Balance   decimal.Decimal    `json:"balance"`
}

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// ErrorResponse is the envelope for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
