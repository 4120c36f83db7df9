package handlers

import (
	"errors"
	"net/http"

	"bankledger/internal/dto"
	apperrors "bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles bank account management endpoints
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountService.CreateAccount(&req)
	if err != nil {
		return h.sendAccountError(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse{Data: account})
}

// GetAccount handles GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.accountService.GetAccount(c.Param("id"))
	if err != nil {
		return h.sendAccountError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: account})
}

// GetAllAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAllAccounts(c echo.Context) error {
	accounts, err := h.accountService.GetAllAccounts()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: accounts})
}

// UpdateAccount handles PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.accountService.UpdateAccount(c.Param("id"), &req)
	if err != nil {
		return h.sendAccountError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: account})
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	if err := h.accountService.DeleteAccount(c.Param("id")); err != nil {
		return h.sendAccountError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) sendAccountError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return SendError(c, apperrors.AccountNotFound)
	case errors.Is(err, repositories.ErrAccountExists):
		return SendError(c, apperrors.AccountAlreadyExists)
	case errors.Is(err, models.ErrInvalidBSB):
		return SendError(c, apperrors.AccountInvalidBSB)
	case errors.Is(err, services.ErrCategoryNotBankAccount):
		return SendError(c, apperrors.AccountNotBank)
	default:
		return SendSystemError(c, err)
	}
}
