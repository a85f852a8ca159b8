// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"sync"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/shopspring/decimal"
)

// LedgerService defines the interface for statement-related business logic.
type LedgerService interface {
	// CreateStatement records a deposit or withdrawal for a user. A
	// withdrawal that exceeds the current balance fails with
	// util.ErrInsufficientFunds and persists nothing.
	CreateStatement(ctx context.Context, userID string, opType domain.OperationType, amount decimal.Decimal, description string) (*domain.Statement, error)
	// GetBalance returns the user's full statement sequence, oldest
	// first, together with the balance derived from it.
	GetBalance(ctx context.Context, userID string) ([]domain.Statement, decimal.Decimal, error)
	// GetStatementOperation returns a single statement owned by the user.
	GetStatementOperation(ctx context.Context, userID, statementID string) (*domain.Statement, error)
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	userRepo      repository.UserRepository
	statementRepo repository.StatementRepository
	userLocks     sync.Map // user id -> *sync.Mutex
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(userRepo repository.UserRepository, statementRepo repository.StatementRepository) LedgerService {
	return &ledgerService{
		userRepo:      userRepo,
		statementRepo: statementRepo,
	}
}

// lockUser returns the mutex serializing statement creation for one user.
// Balance validation and the subsequent insert are a check-then-act pair;
// without the lock two concurrent withdrawals could both observe sufficient
// funds and overdraw the ledger.
func (s *ledgerService) lockUser(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// CreateStatement records a new deposit or withdrawal.
func (s *ledgerService) CreateStatement(ctx context.Context, userID string, opType domain.OperationType, amount decimal.Decimal, description string) (*domain.Statement, error) {
	if !opType.Valid() {
		return nil, util.ErrInvalidInput
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("create statement: failed to resolve user %s: %w", userID, err)
	}

	lock := s.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	if opType == domain.OperationTypeWithdraw {
		statements, err := s.statementRepo.ListStatementsByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("create statement: failed to list statements for user %s: %w", userID, err)
		}
		if domain.ComputeBalance(statements).LessThan(amount) {
			return nil, util.ErrInsufficientFunds
		}
	}

	statement := domain.NewStatement(userID, opType, amount, description)
	if err := s.statementRepo.CreateStatement(ctx, statement); err != nil {
		if util.IsError(err, util.ErrInsufficientFunds) {
			return nil, util.ErrInsufficientFunds
		}
		return nil, fmt.Errorf("create statement: failed to persist statement: %w", err)
	}

	return statement, nil
}

// GetBalance returns the user's statements and the derived balance as one
// snapshot. A user with no statements gets an empty list and zero balance.
func (s *ledgerService) GetBalance(ctx context.Context, userID string) ([]domain.Statement, decimal.Decimal, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, decimal.Zero, util.ErrUserNotFound
		}
		return nil, decimal.Zero, fmt.Errorf("get balance: failed to resolve user %s: %w", userID, err)
	}

	statements, err := s.statementRepo.ListStatementsByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("get balance: failed to list statements for user %s: %w", userID, err)
	}

	return statements, domain.ComputeBalance(statements), nil
}

// GetStatementOperation returns a single statement owned by the user.
func (s *ledgerService) GetStatementOperation(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get statement operation: failed to resolve user %s: %w", userID, err)
	}

	statement, err := s.statementRepo.GetStatementByID(ctx, userID, statementID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrStatementNotFound
		}
		return nil, fmt.Errorf("get statement operation: failed to get statement %s: %w", statementID, err)
	}

	return statement, nil
}
