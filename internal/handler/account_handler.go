package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/middleware"
	"github.com/letsbank/api/internal/models"
)

// AccountReader defines the read-only projections used by AccountHandler.
type AccountReader interface {
	GetAccount(ctx context.Context, email string) (*models.User, error)
	GetBalance(ctx context.Context, email string) (float64, error)
	GetTransactions(ctx context.Context, email string) ([]models.Transaction, error)
}

// AccountHandler serves the identity-scoped read routes. Identity comes from
// the Identity middleware; requests without one are unauthenticated.
type AccountHandler struct {
	accounts AccountReader
}

func NewAccountHandler(accounts AccountReader) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	email, ok := middleware.UserEmail(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.accounts.GetAccount(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch account")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	email, ok := middleware.UserEmail(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	balance, err := h.accounts.GetBalance(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

func (h *AccountHandler) GetTransactions(c *gin.Context) {
	email, ok := middleware.UserEmail(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	txs, err := h.accounts.GetTransactions(c.Request.Context(), email)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
