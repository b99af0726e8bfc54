package analysis

import (
	"sort"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareBudgets joins category totals against the month's budgets and
// flags every category whose spend exceeds its budget. Categories budgeted
// but not spent in, or spent in but not budgeted, produce no flag. Flags
// are sorted descending by the overage.
func CompareBudgets(categories []domain.CategoryTotal, budgets []*domain.Budget) []domain.BudgetFlag {
	budgeted := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		budgeted[b.Category] = b.Amount
	}

	var flags []domain.BudgetFlag
	for _, ct := range categories {
		limit, ok := budgeted[ct.Category]
		if !ok {
			continue
		}
		if ct.Amount.GreaterThan(limit) {
			flags = append(flags, domain.BudgetFlag{
				Category: ct.Category,
				Amount:   ct.Amount,
				Budget:   limit,
				OverBy:   ct.Amount.Sub(limit),
			})
		}
	}

	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].OverBy.GreaterThan(flags[j].OverBy)
	})

	return flags
}
