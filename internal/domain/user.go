// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user of the ledger.
type User struct {
	ID        string    `db:"id" json:"id"`           // Opaque unique identifier (UUID)
	Name      string    `db:"name" json:"name"`       // Display name
	Email     string    `db:"email" json:"email"`     // Unique email, used for authentication
	Password  string    `db:"password" json:"-"`      // Bcrypt hash, never serialized
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser creates a new User with a generated id. The password argument
// must already be hashed.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
