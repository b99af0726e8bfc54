package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ImportExportHandler handles CSV import and export of expenses
type ImportExportHandler struct {
	csvService *service.CSVService
}

// NewImportExportHandler creates a new ImportExportHandler
func NewImportExportHandler(csvService *service.CSVService) *ImportExportHandler {
	return &ImportExportHandler{csvService: csvService}
}

// ImportExpenses handles POST /api/v1/expenses/import
func (h *ImportExportHandler) ImportExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "A CSV file is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded CSV")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	result, err := h.csvService.Import(userID, src)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Msg("Failed to import expenses")
		return NewInternalError(c, "Failed to import expenses")
	}

	log.Info().
		Stringer("user_id", userID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("CSV import finished")

	return c.JSON(http.StatusOK, result)
}

// ExportExpenses handles GET /api/v1/expenses/export
func (h *ImportExportHandler) ExportExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var month *util.Month
	if monthStr := c.QueryParam("month"); monthStr != "" {
		parsed, err := util.ParseMonth(monthStr)
		if err != nil {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		month = &parsed
	}

	filename := service.ExportFilename(month, time.Now())
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	if err := h.csvService.Export(userID, month, c.Response()); err != nil {
		log.Error().Err(err).Msg("Failed to export expenses")
		return err
	}

	return nil
}
