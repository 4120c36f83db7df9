package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bankledger/internal/dto"
	apperrors "bankledger/internal/errors"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles ledger query and update endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	ruleEngine         services.RuleEngineInterface
	transferMatcher    services.TransferMatcherInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	ruleEngine services.RuleEngineInterface,
	transferMatcher services.TransferMatcherInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		ruleEngine:         ruleEngine,
		transferMatcher:    transferMatcher,
	}
}

// GetTransactions handles GET /api/v1/transactions with filter, search and
// pagination query parameters.
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filters := repositories.TransactionFilters{
		AccountID:  c.QueryParam("account_id"),
		FilterType: c.QueryParam("filter"),
		Search:     c.QueryParam("search"),
	}

	if raw := c.QueryParam("start_date"); raw != "" {
		startDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return SendError(c, apperrors.ValidationInvalidDate,
				apperrors.WithDetails("start_date must be YYYY-MM-DD"))
		}
		filters.StartDate = &startDate
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		endDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return SendError(c, apperrors.ValidationInvalidDate,
				apperrors.WithDetails("end_date must be YYYY-MM-DD"))
		}
		filters.EndDate = &endDate
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	response, err := h.transactionService.GetTransactions(filters, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilterType) {
			return SendError(c, apperrors.TransactionInvalidFilter)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// UpdateTransaction handles PATCH /api/v1/transactions/:id for manual
// category assignment and hiding.
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat,
			apperrors.WithDetails("transaction id must be an integer"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}

	transaction, err := h.transactionService.UpdateTransaction(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTransactionNotFound):
			return SendError(c, apperrors.TransactionNotFound)
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return SendError(c, apperrors.CategoryNotFound)
		case errors.Is(err, services.ErrCategoryNotAssignable):
			return SendError(c, apperrors.CategoryNotAssignable)
		default:
			return SendSystemError(c, err)
		}
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: transaction})
}

// RunAllRules handles POST /api/v1/rules/run: reclassify every uncategorized
// transaction using the full rule set, retired rules included.
func (h *TransactionHandler) RunAllRules(c echo.Context) error {
	result, err := h.ruleEngine.RunAllRules(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    result,
		Message: "Rule run complete",
	})
}

// RunTransferMatch handles POST /api/v1/transfers/match: scan the ledger for
// unmatched internal transfer pairs.
func (h *TransactionHandler) RunTransferMatch(c echo.Context) error {
	result, err := h.transferMatcher.RunTransferMatch(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    result,
		Message: "Transfer matching complete",
	})
}
