package service

import (
	"github.com/centavo-app/centavo-backend/internal/analysis"
	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
)

// AnalyticsService computes monthly spending analyses and savings suggestions
type AnalyticsService struct {
	expenseRepo domain.ExpenseRepository
	budgetRepo  domain.BudgetRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(expenseRepo domain.ExpenseRepository, budgetRepo domain.BudgetRepository) *AnalyticsService {
	return &AnalyticsService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
	}
}

// MonthlyAnalysis runs the full analysis pipeline for one calendar month.
// Recurring-charge detection looks at the user's entire expense history,
// not just the requested month.
func (s *AnalyticsService) MonthlyAnalysis(userID uuid.UUID, month util.Month) (*domain.MonthlyAnalysis, error) {
	start, end := month.Bounds()
	monthExpenses, err := s.expenseRepo.GetByDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	history, err := s.expenseRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.GetByMonth(userID, month)
	if err != nil {
		return nil, err
	}

	return analysis.Run(monthExpenses, history, budgets), nil
}

// Suggestions returns ranked savings suggestions for one calendar month
func (s *AnalyticsService) Suggestions(userID uuid.UUID, month util.Month) ([]domain.Suggestion, error) {
	a, err := s.MonthlyAnalysis(userID, month)
	if err != nil {
		return nil, err
	}
	return analysis.RankSuggestions(a), nil
}
