package handlers

import (
	"net/http"

	apperrors "bankledger/internal/errors"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	sampleData  services.SampleDataServiceInterface
	environment string
}

// NewDevHandler creates a new development handler
func NewDevHandler(sampleData services.SampleDataServiceInterface, environment string) *DevHandler {
	return &DevHandler{
		sampleData:  sampleData,
		environment: environment,
	}
}

// SeedSampleData handles POST /api/v1/dev/seed: populate a development
// database with a category tree, two accounts and statement history.
func (h *DevHandler) SeedSampleData(c echo.Context) error {
	if h.environment != "development" {
		return SendError(c, apperrors.SystemNotAvailableInEnv)
	}

	accounts, transactions, err := h.sampleData.Seed(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Sample data seeded",
		Data: map[string]int{
			"accounts_created":     accounts,
			"transactions_created": transactions,
		},
	})
}
