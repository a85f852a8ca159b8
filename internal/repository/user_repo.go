// internal/repository/user_repo.go
package repository

import (
	"context"

	"finledger/internal/domain"
)

// UserRepository defines the contract the ledger requires from a user
// directory. Implementations must reject a duplicate email on create
// with util.ErrDuplicateEntry and report absence with util.ErrNotFound.
type UserRepository interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByID retrieves a user by their id.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	// GetUserByEmail retrieves a user by their email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
