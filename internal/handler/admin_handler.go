package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/middleware"
	"github.com/letsbank/api/internal/models"
	"github.com/letsbank/api/internal/service"
)

// Administrator defines the operator mutations used by AdminHandler.
type Administrator interface {
	DeleteUser(ctx context.Context, email string) error
	CreateUser(ctx context.Context, email, password, fullName string) (*models.User, error)
	CreditByAccountID(ctx context.Context, accountID string, amount float64) (*models.User, error)
	CreditByName(ctx context.Context, fullName string, amount float64, createIfMissing bool) (*models.User, error)
}

// AdminHandler serves /api/admin. These routes are unauthenticated by
// design: they exist for operators and internal tooling.
type AdminHandler struct {
	admin Administrator
}

type AdminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName"`
}

type CreditByAccountRequest struct {
	AccountID string  `json:"accountId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

type CreditRequest struct {
	FullName        string  `json:"fullName" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	CreateIfMissing bool    `json:"createIfMissing"`
}

func NewAdminHandler(admin Administrator) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// DeleteUser removes a user by email, taken from the query string or a JSON
// body.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			email = body.Email
		}
	}
	if email == "" {
		middleware.RespondWithError(c, http.StatusBadRequest, "email is required (query or body)")
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), email); err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, fmt.Sprintf("User not found: %s", email))
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Delete failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s deleted", email)})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, "email and password are required", validationErrors)
		return
	}

	user, err := h.admin.CreateUser(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, ledger.ErrEmailExists) {
			middleware.RespondWithError(c, http.StatusConflict, "User with this email already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Create failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": user})
}

func (h *AdminHandler) CreditByAccount(c *gin.Context) {
	var req CreditByAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "accountId and a positive amount are required")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, "accountId and a positive amount are required", validationErrors)
		return
	}

	user, err := h.admin.CreditByAccountID(c.Request.Context(), req.AccountID, req.Amount)
	if err != nil {
		h.respondCreditError(c, err, fmt.Sprintf("Account not found: %s", req.AccountID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("₹%v credited to account %s", req.Amount, user.AccountID),
		"user":    user,
	})
}

func (h *AdminHandler) Credit(c *gin.Context) {
	var req CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "fullName and a positive amount are required")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, "fullName and a positive amount are required", validationErrors)
		return
	}

	user, err := h.admin.CreditByName(c.Request.Context(), req.FullName, req.Amount, req.CreateIfMissing)
	if err != nil {
		h.respondCreditError(c, err, fmt.Sprintf(
			"User %q not found. Sign up first with that full name, or use \"createIfMissing\": true.", req.FullName))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("₹%v credited to %s", req.Amount, user.FullName),
		"user":    user,
	})
}

func (h *AdminHandler) respondCreditError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, service.ErrInvalidAmount.Error())
	case errors.Is(err, ledger.ErrUserNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, notFoundMsg)
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Credit failed")
	}
}
