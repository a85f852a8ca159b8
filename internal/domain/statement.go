// internal/domain/statement.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// OperationType defines the kind of a statement operation.
type OperationType string

const (
	OperationTypeDeposit  OperationType = "deposit"
	OperationTypeWithdraw OperationType = "withdraw"
)

// Valid reports whether t is one of the two supported operation kinds.
func (t OperationType) Valid() bool {
	return t == OperationTypeDeposit || t == OperationTypeWithdraw
}

// Statement is an immutable record of one deposit or withdrawal. The
// ledger is append-only: statements are never updated or deleted.
type Statement struct {
	ID          string          `db:"id" json:"id"`                   // Opaque unique identifier (UUID)
	UserID      string          `db:"user_id" json:"user_id"`         // Owning user
	Type        OperationType   `db:"type" json:"type"`               // deposit or withdraw
	Amount      decimal.Decimal `db:"amount" json:"amount"`           // Always positive, NUMERIC(20, 4) in DB
	Description string          `db:"description" json:"description"` // Free-text description
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// NewStatement creates a new Statement with a generated id and the
// current timestamp.
func NewStatement(userID string, opType OperationType, amount decimal.Decimal, description string) *Statement {
	return &Statement{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        opType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// ComputeBalance derives the signed total of a sequence of statements:
// deposits add their amount, withdrawals subtract it. Traversal order
// does not affect the result.
func ComputeBalance(statements []Statement) decimal.Decimal {
	balance := decimal.Zero
	for _, st := range statements {
		if st.Type == OperationTypeDeposit {
			balance = balance.Add(st.Amount)
		} else {
			balance = balance.Sub(st.Amount)
		}
	}
	return balance
}
