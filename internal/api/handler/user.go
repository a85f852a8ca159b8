// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"finledger/internal/api/middleware"
	"finledger/internal/api/types"
	"finledger/internal/service"
	"finledger/internal/util"
)

// UserHandler handles HTTP requests for registration, authentication
// and profile lookup.
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateUserRequest represents the request body for user registration.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create handles user registration.
// POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, user)
}

// AuthenticateRequest represents the request body for authentication.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate handles the login request and issues a token.
// POST /api/v1/sessions
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	token, user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.AuthResponse{User: user, Token: token})
}

// GetProfile returns the authenticated user's profile.
// GET /api/v1/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUserNotFound)
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, user)
}
