package analysis

import (
	"math"

	"github.com/centavo-app/centavo-backend/internal/domain"
)

const (
	outlierMinSamples = 3
	outlierZThreshold = 2.0
)

// DetectOutliers flags expenses whose amount sits more than two standard
// deviations from their category's mean. Categories with fewer than three
// expenses are skipped (insufficient sample), as are categories where all
// amounts are identical (zero variance). Flagged expenses keep the input
// order within each category; categories are visited in first-seen order.
func DetectOutliers(expenses []*domain.Expense) []*domain.Expense {
	byCategory := make(map[string][]*domain.Expense)
	var order []string

	for _, exp := range expenses {
		if _, seen := byCategory[exp.Category]; !seen {
			order = append(order, exp.Category)
		}
		byCategory[exp.Category] = append(byCategory[exp.Category], exp)
	}

	var outliers []*domain.Expense
	for _, category := range order {
		group := byCategory[category]
		if len(group) < outlierMinSamples {
			continue
		}

		amounts := make([]float64, len(group))
		for i, exp := range group {
			amounts[i] = exp.Amount.InexactFloat64()
		}

		mean, stdDev := populationStats(amounts)
		if stdDev == 0 {
			continue
		}

		for i, exp := range group {
			z := math.Abs(amounts[i]-mean) / stdDev
			if z > outlierZThreshold {
				outliers = append(outliers, exp)
			}
		}
	}

	return outliers
}
