// internal/api/handler/statement.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"finledger/internal/api/middleware"
	"finledger/internal/api/types"
	"finledger/internal/domain"
	"finledger/internal/service"
	"finledger/internal/util"
)

// StatementHandler handles HTTP requests for the statement ledger.
type StatementHandler struct {
	service service.LedgerService
	logger  *slog.Logger
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(svc service.LedgerService, logger *slog.Logger) *StatementHandler {
	return &StatementHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateStatementRequest represents the request body for deposit and withdraw.
type CreateStatementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Deposit handles the deposit request.
// POST /api/v1/statements/deposit
func (h *StatementHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.createStatement(w, r, domain.OperationTypeDeposit)
}

// Withdraw handles the withdraw request.
// POST /api/v1/statements/withdraw
func (h *StatementHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.createStatement(w, r, domain.OperationTypeWithdraw)
}

func (h *StatementHandler) createStatement(w http.ResponseWriter, r *http.Request, opType domain.OperationType) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUserNotFound)
		return
	}

	var req CreateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	statement, err := h.service.CreateStatement(r.Context(), userID, opType, req.Amount, req.Description)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, statement)
}

// GetBalance handles the balance view request.
// GET /api/v1/statements/balance
func (h *StatementHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUserNotFound)
		return
	}

	statements, balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.BalanceResponse{
		Statement: statements,
		Balance:   balance,
	})
}

// GetStatementOperation handles the single-statement lookup.
// GET /api/v1/statements/{statementID}
func (h *StatementHandler) GetStatementOperation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUserNotFound)
		return
	}

	statementID := chi.URLParam(r, "statementID")
	if statementID == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	statement, err := h.service.GetStatementOperation(r.Context(), userID, statementID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, statement)
}
