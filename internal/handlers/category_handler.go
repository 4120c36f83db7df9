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

// CategoryHandler handles category management endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		return h.sendCategoryError(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse{Data: category})
}

// GetCategory handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryService.GetCategory(c.Param("id"))
	if err != nil {
		return h.sendCategoryError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: category})
}

// GetAllCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	categories, err := h.categoryService.GetAllCategories()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: categories})
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryService.UpdateCategory(c.Param("id"), &req)
	if err != nil {
		return h.sendCategoryError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: category})
}

// GetNextChildID handles GET /api/v1/categories/:id/next-child, returning the
// id a new child created under this parent would receive.
func (h *CategoryHandler) GetNextChildID(c echo.Context) error {
	nextID, err := h.categoryService.NextChildID(c.Param("id"))
	if err != nil {
		return h.sendCategoryError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: map[string]string{"next_id": nextID}})
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryService.DeleteCategory(c.Param("id")); err != nil {
		return h.sendCategoryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) sendCategoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return SendError(c, apperrors.CategoryNotFound)
	case errors.Is(err, repositories.ErrCategoryExists):
		return SendError(c, apperrors.CategoryAlreadyExists)
	case errors.Is(err, repositories.ErrCategoryInUse):
		return SendError(c, apperrors.CategoryInUse)
	case errors.Is(err, services.ErrParentNotFound):
		return SendError(c, apperrors.CategoryInvalidParent)
	case errors.Is(err, models.ErrInvalidCategoryID):
		return SendError(c, apperrors.CategoryInvalidID)
	case errors.Is(err, models.ErrInvalidTaxType):
		return SendError(c, apperrors.CategoryInvalidTaxType)
	case errors.Is(err, models.ErrInvalidCategoryType):
		return SendError(c, apperrors.ValidationInvalidFormat)
	default:
		return SendSystemError(c, err)
	}
}
