// Package analysis implements the monthly spend analysis engine: rollups,
// budget overage flags, outlier and recurring-charge detection, and ranked
// savings suggestions. Every function is pure and operates on immutable
// snapshots handed in by the caller; nothing here touches storage.
package analysis

import (
	"sort"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Aggregates holds the per-category and per-merchant rollups for one month.
type Aggregates struct {
	Total      decimal.Decimal
	Categories []domain.CategoryTotal
	Merchants  []domain.MerchantTotal
}

// Aggregate sums expenses by category and by merchant. Both rollups are
// sorted descending by amount; equal amounts keep first-seen order so the
// output is deterministic. An empty input yields empty rollups.
func Aggregate(expenses []*domain.Expense) Aggregates {
	agg := Aggregates{Total: decimal.Zero}

	catIndex := make(map[string]int)
	merchIndex := make(map[string]int)

	for _, exp := range expenses {
		agg.Total = agg.Total.Add(exp.Amount)

		if i, ok := catIndex[exp.Category]; ok {
			agg.Categories[i].Amount = agg.Categories[i].Amount.Add(exp.Amount)
		} else {
			catIndex[exp.Category] = len(agg.Categories)
			agg.Categories = append(agg.Categories, domain.CategoryTotal{
				Category: exp.Category,
				Amount:   exp.Amount,
			})
		}

		if i, ok := merchIndex[exp.Merchant]; ok {
			agg.Merchants[i].Amount = agg.Merchants[i].Amount.Add(exp.Amount)
		} else {
			merchIndex[exp.Merchant] = len(agg.Merchants)
			agg.Merchants = append(agg.Merchants, domain.MerchantTotal{
				Merchant: exp.Merchant,
				Amount:   exp.Amount,
			})
		}
	}

	sort.SliceStable(agg.Categories, func(i, j int) bool {
		return agg.Categories[i].Amount.GreaterThan(agg.Categories[j].Amount)
	})
	sort.SliceStable(agg.Merchants, func(i, j int) bool {
		return agg.Merchants[i].Amount.GreaterThan(agg.Merchants[j].Amount)
	})

	return agg
}

// SplitWantsNeeds partitions total spend into the discretionary and
// essential buckets. The two buckets always sum to the month's total.
func SplitWantsNeeds(expenses []*domain.Expense) domain.WantsNeeds {
	wn := domain.WantsNeeds{Want: decimal.Zero, Need: decimal.Zero}
	for _, exp := range expenses {
		if exp.IsNeed {
			wn.Need = wn.Need.Add(exp.Amount)
		} else {
			wn.Want = wn.Want.Add(exp.Amount)
		}
	}
	return wn
}
