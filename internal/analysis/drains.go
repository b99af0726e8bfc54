package analysis

import (
	"sort"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const smallDrainMinCount = 3

// smallDrainLimit is the fixed cutoff under which a discretionary charge
// counts as "small". Frequent charges below it leak money without ever
// standing out in the aggregate totals.
var smallDrainLimit = decimal.NewFromInt(200)

// DetectSmallDrains finds merchants with at least three small
// discretionary charges in the month, sorted descending by count.
func DetectSmallDrains(expenses []*domain.Expense) []domain.SmallDrain {
	counts := make(map[string]int)
	var order []string

	for _, exp := range expenses {
		if exp.IsNeed || !exp.Amount.LessThan(smallDrainLimit) {
			continue
		}
		if _, seen := counts[exp.Merchant]; !seen {
			order = append(order, exp.Merchant)
		}
		counts[exp.Merchant]++
	}

	var drains []domain.SmallDrain
	for _, merchant := range order {
		if counts[merchant] >= smallDrainMinCount {
			drains = append(drains, domain.SmallDrain{Merchant: merchant, Count: counts[merchant]})
		}
	}

	sort.SliceStable(drains, func(i, j int) bool {
		return drains[i].Count > drains[j].Count
	})

	return drains
}
