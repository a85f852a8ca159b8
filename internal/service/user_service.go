// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, name, email, password string) (*domain.User, error)
	// Authenticate verifies email and password and issues a signed token.
	Authenticate(ctx context.Context, email, password string) (string, *domain.User, error)
	// GetProfile returns the user's profile.
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository, jwtSecret string, jwtTTL time.Duration) UserService {
	return &userService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

// CreateUser registers a new user. A duplicate email fails with
// util.ErrDuplicateEntry.
func (s *userService) CreateUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, util.ErrInvalidInput
	}

	_, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrDuplicateEntry
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create user: failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to hash password: %w", err)
	}

	user := domain.NewUser(name, email, string(hash))
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			return nil, util.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("create user: failed to persist user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the credentials and returns a signed HS256 token
// whose subject is the user id. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return "", nil, util.ErrIncorrectCredentials
		}
		return "", nil, fmt.Errorf("authenticate: failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrIncorrectCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("authenticate: failed to sign token: %w", err)
	}

	return token, user, nil
}

// GetProfile returns the profile of an existing user.
func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: failed to get user %s: %w", userID, err)
	}
	return user, nil
}
