// internal/repository/memory/user_mem.go
package memory

import (
	"context"
	"sync"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
)

// UserRepository is an in-memory implementation of repository.UserRepository.
// It is safe for concurrent use.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]domain.User // keyed by user id
	byEmail map[string]string      // email -> user id
}

// NewUserRepository creates a new in-memory UserRepository.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{
		users:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// CreateUser stores a new user. A duplicate email is rejected with
// util.ErrDuplicateEntry.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return util.ErrDuplicateEntry
	}
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetUserByID retrieves a user by their id.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, util.ErrNotFound
	}
	user := r.users[id]
	return &user, nil
}
