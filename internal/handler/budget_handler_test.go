package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newBudgetFixture() (*BudgetHandler, *testutil.MockBudgetRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := service.NewBudgetService(budgetRepo, nil)
	return NewBudgetHandler(budgetService), budgetRepo
}

func TestCreateBudget_HTTP_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetFixture()
	userID := uuid.New()

	reqBody := `{"category": "groceries", "amount": "400.00", "month": "2026-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Category != "groceries" {
		t.Errorf("Expected category 'groceries', got %s", response.Category)
	}
	if response.Month.String() != "2026-03" {
		t.Errorf("Expected month 2026-03, got %s", response.Month)
	}
}

func TestCreateBudget_HTTP_Conflict(t *testing.T) {
	e := echo.New()
	handler, budgetRepo := newBudgetFixture()
	userID := uuid.New()

	month, _ := util.ParseMonth("2026-03")
	budgetRepo.AddBudget(&domain.Budget{
		UserID: userID, Category: "groceries", Amount: decimal.NewFromInt(400), Month: month,
	})

	reqBody := `{"category": "groceries", "amount": "500.00", "month": "2026-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, userID)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestCreateBudget_HTTP_BadMonth(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetFixture()

	reqBody := `{"category": "groceries", "amount": "400.00", "month": "March 2026"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, uuid.New())

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetMonthSummary_HTTP(t *testing.T) {
	e := echo.New()
	handler, budgetRepo := newBudgetFixture()
	userID := uuid.New()

	month, _ := util.ParseMonth("2026-03")
	budgetRepo.AddBudget(&domain.Budget{
		UserID: userID, Category: "groceries", Amount: decimal.NewFromInt(400), Month: month,
	})
	budgetRepo.AddBudget(&domain.Budget{
		UserID: userID, Category: "transport", Amount: decimal.NewFromInt(120), Month: month,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/summary/2026-03", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("month")
	c.SetParamValues("2026-03")

	setupAuthContext(c, userID)

	if err := handler.GetMonthSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(response))
	}
	if response["groceries"] != "400" {
		t.Errorf("Expected groceries 400, got %s", response["groceries"])
	}
}

func TestUpdateBudget_HTTP_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetFixture()

	reqBody := `{"amount": "500.00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets/42", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	setupAuthContext(c, uuid.New())

	if err := handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteBudget_HTTP(t *testing.T) {
	e := echo.New()
	handler, budgetRepo := newBudgetFixture()
	userID := uuid.New()

	month, _ := util.ParseMonth("2026-03")
	budgetRepo.AddBudget(&domain.Budget{
		UserID: userID, Category: "groceries", Amount: decimal.NewFromInt(400), Month: month,
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContext(c, userID)

	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
