package analysis

import (
	"github.com/centavo-app/centavo-backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

const maxTopMerchants = 5

// Run computes the full monthly analysis. monthExpenses is the snapshot
// for the analyzed month; history is the user's entire expense record and
// feeds only the recurring-charge detector, which needs multi-month
// evidence. The detectors are independent and read-only over the same
// snapshot, so they run concurrently; none of them can fail on degenerate
// data, which is handled as policy (empty input, small samples, zero
// variance) rather than as errors.
func Run(monthExpenses, history []*domain.Expense, budgets []*domain.Budget) *domain.MonthlyAnalysis {
	agg := Aggregate(monthExpenses)

	result := &domain.MonthlyAnalysis{
		TransactionsInMonth: monthExpenses,
		Total:               agg.Total,
		CategoryTotals:      agg.Categories,
	}

	var g errgroup.Group
	g.Go(func() error {
		result.WantsNeeds = SplitWantsNeeds(monthExpenses)
		return nil
	})
	g.Go(func() error {
		result.BudgetFlags = CompareBudgets(agg.Categories, budgets)
		return nil
	})
	g.Go(func() error {
		result.SmallDrains = DetectSmallDrains(monthExpenses)
		return nil
	})
	g.Go(func() error {
		result.Outliers = DetectOutliers(monthExpenses)
		return nil
	})
	g.Go(func() error {
		result.Recurring = DetectRecurring(history)
		return nil
	})
	_ = g.Wait()

	result.TopMerchants = agg.Merchants
	if len(result.TopMerchants) > maxTopMerchants {
		result.TopMerchants = result.TopMerchants[:maxTopMerchants]
	}

	return result
}
