package service

import (
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/centavo-app/centavo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
	publisher  websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, publisher websocket.EventPublisher) *BudgetService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &BudgetService{
		budgetRepo: budgetRepo,
		publisher:  publisher,
	}
}

// CreateBudget validates and stores a new budget
func (s *BudgetService) CreateBudget(budget *domain.Budget) (*domain.Budget, error) {
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	created, err := s.budgetRepo.Create(budget)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(created.UserID, websocket.BudgetCreated(created))
	return created, nil
}

// GetBudget retrieves a single budget
func (s *BudgetService) GetBudget(userID uuid.UUID, id int32) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(userID, id)
}

// ListBudgets retrieves budgets with optional filters
func (s *BudgetService) ListBudgets(userID uuid.UUID, filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	return s.budgetRepo.List(userID, filters)
}

// UpdateBudgetAmount changes the amount of an existing budget
func (s *BudgetService) UpdateBudgetAmount(userID uuid.UUID, id int32, amount decimal.Decimal) (*domain.Budget, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}

	updated, err := s.budgetRepo.Update(&domain.Budget{ID: id, UserID: userID, Amount: amount})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(updated.UserID, websocket.BudgetUpdated(updated))
	return updated, nil
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(userID uuid.UUID, id int32) error {
	if err := s.budgetRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.BudgetDeleted(map[string]int32{"id": id}))
	return nil
}

// MonthSummary returns the category -> budgeted amount mapping for a month
func (s *BudgetService) MonthSummary(userID uuid.UUID, month util.Month) (map[string]decimal.Decimal, error) {
	budgets, err := s.budgetRepo.GetByMonth(userID, month)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		summary[b.Category] = b.Amount
	}
	return summary, nil
}

func validateBudget(budget *domain.Budget) error {
	if budget.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	if budget.Category == "" || len(budget.Category) > domain.MaxCategoryLength {
		return fmt.Errorf("%w: category is required and must be at most %d characters",
			domain.ErrInvalidInput, domain.MaxCategoryLength)
	}
	if budget.Month == (util.Month{}) {
		return fmt.Errorf("%w: month is required", domain.ErrInvalidInput)
	}
	return nil
}
