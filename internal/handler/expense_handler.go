package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update expense request body
type ExpenseRequest struct {
	Date     string  `json:"date"`
	Amount   string  `json:"amount"`
	Category string  `json:"category"`
	Merchant string  `json:"merchant"`
	Note     *string `json:"note,omitempty"`
	IsNeed   bool    `json:"isNeed"`
}

func (r *ExpenseRequest) toExpense() (*domain.Expense, []ValidationError) {
	var fieldErrors []ValidationError

	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		fieldErrors = append(fieldErrors, ValidationError{Field: "date", Message: "Must be in YYYY-MM-DD format"})
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		fieldErrors = append(fieldErrors, ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return &domain.Expense{
		Date:     date,
		Amount:   amount,
		Category: r.Category,
		Merchant: r.Merchant,
		Note:     r.Note,
		IsNeed:   r.IsNeed,
	}, nil
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	expense, fieldErrors := req.toExpense()
	if fieldErrors != nil {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}
	expense.UserID = userID

	created, err := h.expenseService.CreateExpense(expense)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	return c.JSON(http.StatusCreated, created)
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.GetExpense(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Msg("Failed to fetch expense")
		return NewInternalError(c, "Failed to fetch expense")
	}

	return c.JSON(http.StatusOK, expense)
}

// ListExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)

	filters, fieldErrors := parseExpenseFilters(c)
	if fieldErrors != nil {
		return NewValidationError(c, "Invalid filters", fieldErrors)
	}

	expenses, err := h.expenseService.ListExpenses(userID, filters)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses")
	}

	return c.JSON(http.StatusOK, expenses)
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	expense, fieldErrors := req.toExpense()
	if fieldErrors != nil {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}
	expense.ID = id
	expense.UserID = userID

	updated, err := h.expenseService.UpdateExpense(expense)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, err.Error(), nil)
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		default:
			log.Error().Err(err).Msg("Failed to update expense")
			return NewInternalError(c, "Failed to update expense")
		}
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseIDParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(userID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	return c.NoContent(http.StatusNoContent)
}

func parseIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

func parseExpenseFilters(c echo.Context) (*domain.ExpenseFilters, []ValidationError) {
	filters := &domain.ExpenseFilters{
		Search: c.QueryParam("search"),
		Limit:  domain.DefaultExpenseLimit,
	}

	if monthStr := c.QueryParam("month"); monthStr != "" {
		month, err := util.ParseMonth(monthStr)
		if err != nil {
			return nil, []ValidationError{{Field: "month", Message: "Must be in YYYY-MM format"}}
		}
		filters.Month = &month
	}

	if category := c.QueryParam("category"); category != "" {
		filters.Category = &category
	}

	if needStr := c.QueryParam("isNeed"); needStr != "" {
		isNeed, err := strconv.ParseBool(needStr)
		if err != nil {
			return nil, []ValidationError{{Field: "isNeed", Message: "Must be true or false"}}
		}
		filters.IsNeed = &isNeed
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil || limit <= 0 {
			return nil, []ValidationError{{Field: "limit", Message: "Must be a positive integer"}}
		}
		if limit > domain.MaxExpenseLimit {
			limit = domain.MaxExpenseLimit
		}
		filters.Limit = int32(limit)
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, err := strconv.ParseInt(offsetStr, 10, 32)
		if err != nil || offset < 0 {
			return nil, []ValidationError{{Field: "offset", Message: "Must be a non-negative integer"}}
		}
		filters.Offset = int32(offset)
	}

	return filters, nil
}
