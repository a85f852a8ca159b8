// internal/repository/postgres/statement_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
	"finledger/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// StatementRepository implements repository.StatementRepository for PostgreSQL.
type StatementRepository struct {
	db *sqlx.DB
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(db *sqlx.DB) repository.StatementRepository {
	return &StatementRepository{db: db}
}

// CreateStatement inserts a new statement record. Withdrawals run inside
// a transaction that takes a per-user advisory lock and re-validates the
// balance at commit time, so the non-negative invariant holds even when
// multiple service instances share the database.
func (r *StatementRepository) CreateStatement(ctx context.Context, statement *domain.Statement) error {
	if statement.Type != domain.OperationTypeWithdraw {
		return insertStatement(ctx, r.db, statement)
	}

	tx, err := db.BeginTx(ctx, r.db)
	if err != nil {
		return fmt.Errorf("create statement: %w", err)
	}
	defer db.RollbackTx(tx)

	// Serialize withdrawals per user across all connections.
	lockQuery := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := tx.ExecContext(ctx, lockQuery, statement.UserID); err != nil {
		return fmt.Errorf("failed to acquire user lock for %s: %w", statement.UserID, err)
	}

	balance, err := sumBalance(ctx, tx, statement.UserID)
	if err != nil {
		return err
	}
	if balance.LessThan(statement.Amount) {
		return util.ErrInsufficientFunds
	}

	if err := insertStatement(ctx, tx, statement); err != nil {
		return err
	}
	return db.CommitTx(tx)
}

// GetStatementByID retrieves a statement by id, scoped to the given user.
func (r *StatementRepository) GetStatementByID(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	var statement domain.Statement
	query := `SELECT id, user_id, type, amount, description, created_at
              FROM statements WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &statement, query, statementID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get statement %s for user %s: %w", statementID, userID, err)
	}
	return &statement, nil
}

// ListStatementsByUser retrieves all statements for a user, oldest first.
func (r *StatementRepository) ListStatementsByUser(ctx context.Context, userID string) ([]domain.Statement, error) {
	statements := []domain.Statement{}
	query := `SELECT id, user_id, type, amount, description, created_at
              FROM statements WHERE user_id = $1
              ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &statements, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list statements for user %s: %w", userID, err)
	}
	return statements, nil
}

func insertStatement(ctx context.Context, q DBExecutor, statement *domain.Statement) error {
	query := `INSERT INTO statements (id, user_id, type, amount, description, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		statement.ID,
		statement.UserID,
		statement.Type,
		statement.Amount,
		statement.Description,
		statement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create statement: %w", err)
	}
	return nil
}

func sumBalance(ctx context.Context, q DBExecutor, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
              FROM statements WHERE user_id = $1`
	if err := q.GetContext(ctx, &balance, query, userID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance for user %s: %w", userID, err)
	}
	return balance, nil
}
