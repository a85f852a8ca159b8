// internal/repository/memory/statement_mem.go
package memory

import (
	"context"
	"sync"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
)

// StatementRepository is an in-memory implementation of
// repository.StatementRepository. Statements are held per user in append
// order, so ListStatementsByUser is naturally oldest-first. It is safe
// for concurrent use.
type StatementRepository struct {
	mu       sync.RWMutex
	byUser   map[string][]domain.Statement // user id -> statements in insertion order
	ownerOf  map[string]string             // statement id -> user id
	indexFor map[string]int                // statement id -> index in the owner's slice
}

// NewStatementRepository creates a new in-memory StatementRepository.
func NewStatementRepository() repository.StatementRepository {
	return &StatementRepository{
		byUser:   make(map[string][]domain.Statement),
		ownerOf:  make(map[string]string),
		indexFor: make(map[string]int),
	}
}

// CreateStatement appends a new statement to the owner's ledger.
func (r *StatementRepository) CreateStatement(ctx context.Context, statement *domain.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.indexFor[statement.ID] = len(r.byUser[statement.UserID])
	r.ownerOf[statement.ID] = statement.UserID
	r.byUser[statement.UserID] = append(r.byUser[statement.UserID], *statement)
	return nil
}

// GetStatementByID retrieves a statement by id, scoped to the given user.
// A statement owned by a different user is reported absent.
func (r *StatementRepository) GetStatementByID(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.ownerOf[statementID]
	if !ok || owner != userID {
		return nil, util.ErrNotFound
	}
	statement := r.byUser[owner][r.indexFor[statementID]]
	return &statement, nil
}

// ListStatementsByUser retrieves all statements for a user, oldest first.
func (r *StatementRepository) ListStatementsByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byUser[userID]
	statements := make([]domain.Statement, len(stored))
	copy(statements, stored)
	return statements, nil
}
