package analysis

import (
	"sort"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/shopspring/decimal"
)

const (
	recurringMinMonths = 2
	// A merchant is recurring when the population standard deviation of
	// its per-month sums stays under 30% of their mean.
	recurringVarianceRatio = 0.3
)

// DetectRecurring scans the user's full expense history for merchants
// charged in at least two distinct months with stable per-month totals.
// Stability is judged on full-precision statistics; the reported mean is
// rounded to two decimal places for display only. Results are sorted
// descending by mean.
func DetectRecurring(history []*domain.Expense) []domain.RecurringCharge {
	monthlySums := make(map[string]map[util.Month]decimal.Decimal)
	var order []string

	for _, exp := range history {
		month := util.MonthOf(exp.Date)
		if _, seen := monthlySums[exp.Merchant]; !seen {
			order = append(order, exp.Merchant)
			monthlySums[exp.Merchant] = make(map[util.Month]decimal.Decimal)
		}
		monthlySums[exp.Merchant][month] = monthlySums[exp.Merchant][month].Add(exp.Amount)
	}

	var recurring []domain.RecurringCharge
	for _, merchant := range order {
		months := monthlySums[merchant]
		if len(months) < recurringMinMonths {
			continue
		}

		sums := make([]float64, 0, len(months))
		total := decimal.Zero
		for _, sum := range months {
			sums = append(sums, sum.InexactFloat64())
			total = total.Add(sum)
		}

		mean, stdDev := populationStats(sums)
		if stdDev >= mean*recurringVarianceRatio {
			continue
		}

		recurring = append(recurring, domain.RecurringCharge{
			Merchant: merchant,
			Mean:     total.Div(decimal.NewFromInt(int64(len(months)))).Round(2),
			Months:   len(months),
		})
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].Mean.GreaterThan(recurring[j].Mean)
	})

	return recurring
}
