package handler

import (
	"errors"
	"net/http"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
}

// UpdateBudgetRequest represents the update budget request body
type UpdateBudgetRequest struct {
	Amount string `json:"amount"`
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	month, err := util.ParseMonth(req.Month)
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	created, err := h.budgetService.CreateBudget(&domain.Budget{
		UserID:   userID,
		Category: req.Category,
		Amount:   amount,
		Month:    month,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, err.Error(), nil)
		case errors.Is(err, domain.ErrBudgetExists):
			return NewConflictError(c, "A budget for this category and month already exists")
		default:
			log.Error().Err(err).Msg("Failed to create budget")
			return NewInternalError(c, "Failed to create budget")
		}
	}

	return c.JSON(http.StatusCreated, created)
}

// ListBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)

	filters := &domain.BudgetFilters{}
	if monthStr := c.QueryParam("month"); monthStr != "" {
		month, err := util.ParseMonth(monthStr)
		if err != nil {
			return NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be in YYYY-MM format"},
			})
		}
		filters.Month = &month
	}
	if category := c.QueryParam("category"); category != "" {
		filters.Category = &category
	}

	budgets, err := h.budgetService.ListBudgets(userID, filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	return c.JSON(http.StatusOK, budgets)
}

// GetMonthSummary handles GET /api/v1/budgets/summary/:month
func (h *BudgetHandler) GetMonthSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)

	month, err := util.ParseMonth(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be in YYYY-MM format"},
		})
	}

	summary, err := h.budgetService.MonthSummary(userID, month)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build budget summary")
		return NewInternalError(c, "Failed to build budget summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	updated, err := h.budgetService.UpdateBudgetAmount(userID, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, err.Error(), nil)
		case errors.Is(err, domain.ErrBudgetNotFound):
			return NewNotFoundError(c, "Budget not found")
		default:
			log.Error().Err(err).Msg("Failed to update budget")
			return NewInternalError(c, "Failed to update budget")
		}
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	return c.NoContent(http.StatusNoContent)
}
