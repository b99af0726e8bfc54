package handler

import (
	"net/http"

	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetMonthlyAnalysis handles GET /api/v1/analytics/monthly/:month
func (h *AnalyticsHandler) GetMonthlyAnalysis(c echo.Context) error {
	userID := middleware.GetUserID(c)

	month, err := util.ParseMonth(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	analysis, err := h.analyticsService.MonthlyAnalysis(userID, month)
	if err != nil {
		log.Error().Err(err).Str("month", month.String()).Msg("Failed to run monthly analysis")
		return NewInternalError(c, "Failed to run monthly analysis")
	}

	return c.JSON(http.StatusOK, analysis)
}

// GetSuggestions handles GET /api/v1/analytics/suggestions/:month
func (h *AnalyticsHandler) GetSuggestions(c echo.Context) error {
	userID := middleware.GetUserID(c)

	month, err := util.ParseMonth(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	suggestions, err := h.analyticsService.Suggestions(userID, month)
	if err != nil {
		log.Error().Err(err).Str("month", month.String()).Msg("Failed to build suggestions")
		return NewInternalError(c, "Failed to build suggestions")
	}

	return c.JSON(http.StatusOK, suggestions)
}
