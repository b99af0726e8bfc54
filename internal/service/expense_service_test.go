package service

import (
	"errors"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateExpense_Success(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	publisher := testutil.NewMockEventPublisher()
	expenseService := NewExpenseService(expenseRepo, publisher)

	userID := uuid.New()

	expense, err := expenseService.CreateExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(150.00),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if expense.ID == 0 {
		t.Error("Expected expense to get an ID")
	}
	if !expense.Amount.Equal(decimal.NewFromFloat(150.00)) {
		t.Errorf("Expected amount '150.00', got %s", expense.Amount.String())
	}

	events := publisher.Published()
	if len(events) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(events))
	}
	if events[0].UserID != userID {
		t.Errorf("Expected event for user %s, got %s", userID, events[0].UserID)
	}
	if events[0].Event.Type != "expense.created" {
		t.Errorf("Expected event type 'expense.created', got %s", events[0].Event.Type)
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	expenseService := NewExpenseService(expenseRepo, nil)

	userID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	longName := make([]byte, domain.MaxMerchantLength+1)
	for i := range longName {
		longName[i] = 'x'
	}

	tests := []struct {
		name    string
		expense *domain.Expense
	}{
		{"zero amount", &domain.Expense{UserID: userID, Date: date, Amount: decimal.Zero, Category: "groceries", Merchant: "Grocer Bros"}},
		{"negative amount", &domain.Expense{UserID: userID, Date: date, Amount: decimal.NewFromInt(-5), Category: "groceries", Merchant: "Grocer Bros"}},
		{"missing category", &domain.Expense{UserID: userID, Date: date, Amount: decimal.NewFromInt(5), Merchant: "Grocer Bros"}},
		{"missing merchant", &domain.Expense{UserID: userID, Date: date, Amount: decimal.NewFromInt(5), Category: "groceries"}},
		{"merchant too long", &domain.Expense{UserID: userID, Date: date, Amount: decimal.NewFromInt(5), Category: "groceries", Merchant: string(longName)}},
		{"missing date", &domain.Expense{UserID: userID, Amount: decimal.NewFromInt(5), Category: "groceries", Merchant: "Grocer Bros"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expenseService.CreateExpense(tt.expense)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if len(expenseRepo.Expenses) != 0 {
		t.Errorf("Expected no expenses stored, got %d", len(expenseRepo.Expenses))
	}
}

func TestUpdateExpense_PublishesEvent(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	publisher := testutil.NewMockEventPublisher()
	expenseService := NewExpenseService(expenseRepo, publisher)

	userID := uuid.New()
	existing := expenseRepo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(20),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})

	updated, err := expenseService.UpdateExpense(&domain.Expense{
		ID:       existing.ID,
		UserID:   userID,
		Date:     existing.Date,
		Amount:   decimal.NewFromInt(25),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected amount 25, got %s", updated.Amount)
	}

	events := publisher.Published()
	if len(events) != 1 || events[0].Event.Type != "expense.updated" {
		t.Errorf("Expected one expense.updated event, got %+v", events)
	}
}

func TestUpdateExpense_NotFound(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	expenseService := NewExpenseService(expenseRepo, nil)

	_, err := expenseService.UpdateExpense(&domain.Expense{
		ID:       99,
		UserID:   uuid.New(),
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(25),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})
	if !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("Expected ErrExpenseNotFound, got %v", err)
	}
}

func TestDeleteExpense_PublishesEvent(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	publisher := testutil.NewMockEventPublisher()
	expenseService := NewExpenseService(expenseRepo, publisher)

	userID := uuid.New()
	existing := expenseRepo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(20),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})

	if err := expenseService.DeleteExpense(userID, existing.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	events := publisher.Published()
	if len(events) != 1 || events[0].Event.Type != "expense.deleted" {
		t.Errorf("Expected one expense.deleted event, got %+v", events)
	}
	if len(expenseRepo.Expenses) != 0 {
		t.Error("Expected expense to be removed")
	}
}

func TestDeleteExpense_OtherUsersExpense(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	expenseService := NewExpenseService(expenseRepo, nil)

	owner := uuid.New()
	existing := expenseRepo.AddExpense(&domain.Expense{
		UserID:   owner,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(20),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})

	err := expenseService.DeleteExpense(uuid.New(), existing.ID)
	if !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Errorf("Expected ErrExpenseNotFound for another user's expense, got %v", err)
	}
}

func TestListExpenses_FiltersByMonth(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	expenseService := NewExpenseService(expenseRepo, nil)

	userID := uuid.New()
	expenseRepo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(20),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})
	expenseRepo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(30),
		Category: "groceries",
		Merchant: "Grocer Bros",
	})

	month, err := util.ParseMonth("2026-03")
	if err != nil {
		t.Fatal(err)
	}

	expenses, err := expenseService.ListExpenses(userID, &domain.ExpenseFilters{Month: &month})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("Expected 1 expense in March, got %d", len(expenses))
	}
	if !expenses[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected the March expense, got amount %s", expenses[0].Amount)
	}
}
