// internal/repository/memory/statement_mem_test.go
package memory

import (
	"context"
	"testing"

	"finledger/internal/domain"
	"finledger/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ListPreservesInsertionOrder", func(t *testing.T) {
		repo := NewStatementRepository()

		first := domain.NewStatement("user-1", domain.OperationTypeDeposit, decimal.NewFromInt(100), "first")
		second := domain.NewStatement("user-1", domain.OperationTypeWithdraw, decimal.NewFromInt(40), "second")
		third := domain.NewStatement("user-1", domain.OperationTypeDeposit, decimal.NewFromInt(5), "third")
		for _, st := range []*domain.Statement{first, second, third} {
			require.NoError(t, repo.CreateStatement(ctx, st))
		}

		statements, err := repo.ListStatementsByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, statements, 3)
		assert.Equal(t, first.ID, statements[0].ID)
		assert.Equal(t, second.ID, statements[1].ID)
		assert.Equal(t, third.ID, statements[2].ID)
	})

	t.Run("ListForUnknownUserIsEmpty", func(t *testing.T) {
		repo := NewStatementRepository()

		statements, err := repo.ListStatementsByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, statements)
	})

	t.Run("GetIsScopedToUser", func(t *testing.T) {
		repo := NewStatementRepository()

		owned := domain.NewStatement("alice", domain.OperationTypeDeposit, decimal.NewFromInt(100), "salary")
		require.NoError(t, repo.CreateStatement(ctx, owned))

		got, err := repo.GetStatementByID(ctx, "alice", owned.ID)
		require.NoError(t, err)
		assert.Equal(t, owned.ID, got.ID)

		// The same id under another user's scope is absent.
		_, err = repo.GetStatementByID(ctx, "bob", owned.ID)
		assert.ErrorIs(t, err, util.ErrNotFound)

		_, err = repo.GetStatementByID(ctx, "alice", "missing")
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("ReturnedSlicesAreCopies", func(t *testing.T) {
		repo := NewStatementRepository()

		st := domain.NewStatement("user-1", domain.OperationTypeDeposit, decimal.NewFromInt(100), "salary")
		require.NoError(t, repo.CreateStatement(ctx, st))

		statements, err := repo.ListStatementsByUser(ctx, "user-1")
		require.NoError(t, err)
		statements[0].Description = "tampered"

		again, err := repo.ListStatementsByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "salary", again[0].Description)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndLookup", func(t *testing.T) {
		repo := NewUserRepository()

		user := domain.NewUser("test", "test@test.com.br", "hash")
		require.NoError(t, repo.CreateUser(ctx, user))

		byID, err := repo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)

		byEmail, err := repo.GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		repo := NewUserRepository()

		require.NoError(t, repo.CreateUser(ctx, domain.NewUser("test", "test@test.com.br", "hash")))
		err := repo.CreateUser(ctx, domain.NewUser("other", "test@test.com.br", "hash"))

		assert.ErrorIs(t, err, util.ErrDuplicateEntry)
	})

	t.Run("AbsentUser", func(t *testing.T) {
		repo := NewUserRepository()

		_, err := repo.GetUserByID(ctx, "missing")
		assert.ErrorIs(t, err, util.ErrNotFound)

		_, err = repo.GetUserByEmail(ctx, "missing@test.com.br")
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}
