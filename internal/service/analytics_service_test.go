package service

import (
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func addExpense(repo *testutil.MockExpenseRepository, userID uuid.UUID, date time.Time, amount float64, category, merchant string, isNeed bool) {
	repo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     date,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Merchant: merchant,
		IsNeed:   isNeed,
	})
}

func TestMonthlyAnalysis(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	analyticsService := NewAnalyticsService(expenseRepo, budgetRepo)

	userID := uuid.New()
	march := mustMonth(t, "2026-03")

	addExpense(expenseRepo, userID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), 120, "groceries", "Grocer Bros", true)
	addExpense(expenseRepo, userID, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), 80, "groceries", "Grocer Bros", true)
	addExpense(expenseRepo, userID, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), 60, "entertainment", "CineMax", false)

	// Outside the requested month
	addExpense(expenseRepo, userID, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 500, "travel", "AirGo", false)
	addExpense(expenseRepo, userID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 500, "travel", "AirGo", false)

	budgetRepo.AddBudget(&domain.Budget{
		UserID: userID, Category: "groceries", Amount: decimal.NewFromInt(150), Month: march,
	})

	result, err := analyticsService.MonthlyAnalysis(userID, march)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.TransactionsInMonth) != 3 {
		t.Errorf("Expected 3 transactions in month, got %d", len(result.TransactionsInMonth))
	}
	if !result.Total.Equal(decimal.NewFromInt(260)) {
		t.Errorf("Expected total 260, got %s", result.Total)
	}
	if len(result.BudgetFlags) != 1 {
		t.Fatalf("Expected 1 budget flag, got %d", len(result.BudgetFlags))
	}
	if !result.BudgetFlags[0].OverBy.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected groceries over by 50, got %s", result.BudgetFlags[0].OverBy)
	}
}

func TestMonthlyAnalysis_RecurringUsesFullHistory(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	analyticsService := NewAnalyticsService(expenseRepo, budgetRepo)

	userID := uuid.New()

	// A steady monthly charge across three months; only March is analyzed
	for _, date := range []time.Time{
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	} {
		addExpense(expenseRepo, userID, date, 15.99, "entertainment", "StreamFlix", false)
	}

	result, err := analyticsService.MonthlyAnalysis(userID, mustMonth(t, "2026-03"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Recurring) != 1 {
		t.Fatalf("Expected 1 recurring charge, got %d", len(result.Recurring))
	}
	if result.Recurring[0].Merchant != "StreamFlix" {
		t.Errorf("Expected StreamFlix, got %s", result.Recurring[0].Merchant)
	}
	if result.Recurring[0].Months != 3 {
		t.Errorf("Expected 3 months of history, got %d", result.Recurring[0].Months)
	}
}

func TestMonthlyAnalysis_EmptyMonth(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	analyticsService := NewAnalyticsService(expenseRepo, budgetRepo)

	result, err := analyticsService.MonthlyAnalysis(uuid.New(), mustMonth(t, "2026-03"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.TransactionsInMonth) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(result.TransactionsInMonth))
	}
	if !result.Total.IsZero() {
		t.Errorf("Expected zero total, got %s", result.Total)
	}
}

func TestSuggestions(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	analyticsService := NewAnalyticsService(expenseRepo, budgetRepo)

	userID := uuid.New()
	march := mustMonth(t, "2026-03")

	// Heavy discretionary spend should trigger the wants-trim suggestion
	addExpense(expenseRepo, userID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), 100, "rent", "HomeCo", true)
	addExpense(expenseRepo, userID, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), 400, "entertainment", "CineMax", false)

	suggestions, err := analyticsService.Suggestions(userID, march)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(suggestions) == 0 {
		t.Fatal("Expected at least one suggestion")
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Impact.GreaterThan(suggestions[i-1].Impact) {
			t.Errorf("Expected suggestions sorted by impact desc, got %s before %s",
				suggestions[i-1].Impact, suggestions[i].Impact)
		}
	}
}
