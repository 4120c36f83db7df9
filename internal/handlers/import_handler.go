package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "bankledger/internal/errors"
	"bankledger/internal/parser"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
)

// ImportHandler handles statement upload endpoints
type ImportHandler struct {
	importService services.ImportServiceInterface
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService services.ImportServiceInterface) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportFile handles POST /api/v1/accounts/:id/imports. The statement file is
// uploaded as multipart field "file"; an optional "format" field forces qif
// or csv instead of content detection.
func (h *ImportHandler) ImportFile(c echo.Context) error {
	accountID := c.Param("id")

	fileBytes, format, err := h.readUpload(c)
	if err != nil {
		return h.sendUploadError(c, err)
	}

	result, err := h.importService.ImportFile(c.Request().Context(), accountID, fileBytes, format)
	if err != nil {
		return h.sendImportError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    result,
		Message: "Statement imported",
	})
}

// PreviewImport handles POST /api/v1/imports/preview. Nothing is persisted;
// the response shows how the file would be interpreted.
func (h *ImportHandler) PreviewImport(c echo.Context) error {
	accountID := c.QueryParam("account_id")
	if accountID == "" {
		return SendError(c, apperrors.ValidationRequiredField,
			apperrors.WithDetails("account_id query parameter is required"))
	}

	fileBytes, format, err := h.readUpload(c)
	if err != nil {
		return h.sendUploadError(c, err)
	}

	preview, err := h.importService.PreviewImport(c.Request().Context(), accountID, fileBytes, format)
	if err != nil {
		return h.sendImportError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: preview})
}

var errMissingUploadFile = errors.New("multipart field 'file' is required")

// readUpload never writes to the response itself; the caller maps its errors
// exactly once via sendUploadError.
func (h *ImportHandler) readUpload(c echo.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", errMissingUploadFile
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("opening uploaded file: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("reading uploaded file: %w", err)
	}

	return fileBytes, c.FormValue("format"), nil
}

func (h *ImportHandler) sendUploadError(c echo.Context, err error) error {
	if errors.Is(err, errMissingUploadFile) {
		return SendError(c, apperrors.ValidationRequiredField,
			apperrors.WithDetails(errMissingUploadFile.Error()))
	}
	return SendSystemError(c, err)
}

func (h *ImportHandler) sendImportError(c echo.Context, err error) error {
	var parseErr *parser.ParseError
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return SendError(c, apperrors.AccountNotFound)
	case errors.Is(err, parser.ErrFileTooLarge):
		return SendError(c, apperrors.ImportFileTooLarge)
	case errors.Is(err, parser.ErrEmptyFile):
		return SendError(c, apperrors.ImportEmptyFile)
	case errors.Is(err, parser.ErrUnknownFormat):
		return SendError(c, apperrors.ImportUnknownFormat)
	case errors.As(err, &parseErr):
		return SendError(c, apperrors.ImportParseFailed, apperrors.WithDetails(parseErr.Error()))
	default:
		return SendSystemError(c, err)
	}
}
