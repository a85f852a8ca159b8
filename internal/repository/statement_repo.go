// internal/repository/statement_repo.go
package repository

import (
	"context"

	"finledger/internal/domain"
)

// StatementRepository defines the contract the ledger requires from
// statement storage. Statements are append-only: there are no update
// or delete operations.
type StatementRepository interface {
	// CreateStatement persists a new statement record.
	CreateStatement(ctx context.Context, statement *domain.Statement) error
	// GetStatementByID retrieves a statement by id, scoped to the given
	// user. A statement owned by a different user is reported absent
	// with util.ErrNotFound.
	GetStatementByID(ctx context.Context, userID, statementID string) (*domain.Statement, error)
	// ListStatementsByUser retrieves all statements for a user in
	// insertion order, oldest first.
	ListStatementsByUser(ctx context.Context, userID string) ([]domain.Statement, error)
}
