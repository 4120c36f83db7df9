package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bankledger/internal/dto"
	apperrors "bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
)

// RuleHandler handles categorization rule management endpoints
type RuleHandler struct {
	ruleService services.RuleServiceInterface
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(ruleService services.RuleServiceInterface) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// CreateRule handles POST /api/v1/rules
func (h *RuleHandler) CreateRule(c echo.Context) error {
	var req dto.CreateRuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rule, err := h.ruleService.CreateRule(&req)
	if err != nil {
		return h.sendRuleError(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse{Data: rule})
}

// GetRule handles GET /api/v1/rules/:id
func (h *RuleHandler) GetRule(c echo.Context) error {
	id, err := parseRuleID(c)
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat,
			apperrors.WithDetails("rule id must be an integer"))
	}

	rule, err := h.ruleService.GetRule(id)
	if err != nil {
		return h.sendRuleError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: rule})
}

// GetAllRules handles GET /api/v1/rules, in priority order
func (h *RuleHandler) GetAllRules(c echo.Context) error {
	rules, err := h.ruleService.GetAllRules()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: rules})
}

// UpdateRule handles PUT /api/v1/rules/:id
func (h *RuleHandler) UpdateRule(c echo.Context) error {
	id, err := parseRuleID(c)
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat,
			apperrors.WithDetails("rule id must be an integer"))
	}

	var req dto.CreateRuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rule, err := h.ruleService.UpdateRule(id, &req)
	if err != nil {
		return h.sendRuleError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: rule})
}

// DeleteRule handles DELETE /api/v1/rules/:id
func (h *RuleHandler) DeleteRule(c echo.Context) error {
	id, err := parseRuleID(c)
	if err != nil {
		return SendError(c, apperrors.ValidationInvalidFormat,
			apperrors.WithDetails("rule id must be an integer"))
	}

	if err := h.ruleService.DeleteRule(id); err != nil {
		return h.sendRuleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseRuleID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *RuleHandler) sendRuleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrRuleNotFound):
		return SendError(c, apperrors.RuleNotFound)
	case errors.Is(err, services.ErrRuleTargetNotFound):
		return SendError(c, apperrors.CategoryNotFound)
	case errors.Is(err, services.ErrCategoryNotAssignable):
		return SendError(c, apperrors.CategoryNotAssignable)
	case errors.Is(err, models.ErrInvalidAmountOperator):
		return SendError(c, apperrors.RuleBadOperator)
	case errors.Is(err, models.ErrMissingAmountValue),
		errors.Is(err, models.ErrMissingAmountUpperBound):
		return SendError(c, apperrors.RuleMalformed)
	case errors.Is(err, models.ErrNoDescriptionConditions),
		errors.Is(err, models.ErrInvalidConditionOperator),
		errors.Is(err, models.ErrInvalidConditionSequence):
		return SendError(c, apperrors.RuleBadCondition)
	default:
		return SendSystemError(c, err)
	}
}
