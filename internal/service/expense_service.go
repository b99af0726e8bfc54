package service

import (
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/websocket"
	"github.com/google/uuid"
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
	publisher   websocket.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, publisher websocket.EventPublisher) *ExpenseService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ExpenseService{
		expenseRepo: expenseRepo,
		publisher:   publisher,
	}
}

// CreateExpense validates and stores a new expense
func (s *ExpenseService) CreateExpense(expense *domain.Expense) (*domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(created.UserID, websocket.ExpenseCreated(created))
	return created, nil
}

// GetExpense retrieves a single expense
func (s *ExpenseService) GetExpense(userID uuid.UUID, id int32) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(userID, id)
}

// ListExpenses retrieves expenses with optional filters
func (s *ExpenseService) ListExpenses(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	return s.expenseRepo.List(userID, filters)
}

// UpdateExpense validates and stores changes to an expense
func (s *ExpenseService) UpdateExpense(expense *domain.Expense) (*domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.Update(expense)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(updated.UserID, websocket.ExpenseUpdated(updated))
	return updated, nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(userID uuid.UUID, id int32) error {
	if err := s.expenseRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.ExpenseDeleted(map[string]int32{"id": id}))
	return nil
}

func validateExpense(expense *domain.Expense) error {
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if expense.Category == "" || len(expense.Category) > domain.MaxCategoryLength {
		return fmt.Errorf("%w: category is required and must be at most %d characters",
			domain.ErrInvalidInput, domain.MaxCategoryLength)
	}
	if expense.Merchant == "" || len(expense.Merchant) > domain.MaxMerchantLength {
		return fmt.Errorf("%w: merchant is required and must be at most %d characters",
			domain.ErrInvalidInput, domain.MaxMerchantLength)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	return nil
}
