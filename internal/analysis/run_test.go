package analysis

import (
	"testing"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_QuietMonth(t *testing.T) {
	// Two essential charges, no budgets: rollups only, no detections.
	monthExpenses := []*domain.Expense{
		testExpense("2025-06-03", 50, "Food", "Grocer", true),
		testExpense("2025-06-01", 3000, "Rent", "Landlord", true),
	}

	a := Run(monthExpenses, monthExpenses, nil)

	assert.Equal(t, "3050", a.Total.String())
	assert.Len(t, a.TransactionsInMonth, 2)

	require.Len(t, a.CategoryTotals, 2)
	assert.Equal(t, "Rent", a.CategoryTotals[0].Category)
	assert.Equal(t, "3000", a.CategoryTotals[0].Amount.String())
	assert.Equal(t, "Food", a.CategoryTotals[1].Category)
	assert.Equal(t, "50", a.CategoryTotals[1].Amount.String())

	assert.True(t, a.WantsNeeds.Want.IsZero())
	assert.Equal(t, "3050", a.WantsNeeds.Need.String())

	assert.Empty(t, a.BudgetFlags)
	assert.Empty(t, a.SmallDrains)
	assert.Empty(t, a.Outliers)
	assert.Empty(t, a.Recurring)
}

func TestRun_Empty(t *testing.T) {
	a := Run(nil, nil, nil)

	assert.True(t, a.Total.IsZero())
	assert.Empty(t, a.TransactionsInMonth)
	assert.Empty(t, a.CategoryTotals)
	assert.Empty(t, a.TopMerchants)
	assert.True(t, a.WantsNeeds.Want.IsZero())
	assert.True(t, a.WantsNeeds.Need.IsZero())
	assert.Empty(t, a.BudgetFlags)
	assert.Empty(t, a.SmallDrains)
	assert.Empty(t, a.Outliers)
	assert.Empty(t, a.Recurring)
	assert.Empty(t, RankSuggestions(a))
}

func TestRun_TopMerchantsTruncatedToFive(t *testing.T) {
	expenses := []*domain.Expense{
		testExpense("2025-06-01", 700, "Shopping", "A", false),
		testExpense("2025-06-02", 600, "Shopping", "B", false),
		testExpense("2025-06-03", 500, "Shopping", "C", false),
		testExpense("2025-06-04", 400, "Shopping", "D", false),
		testExpense("2025-06-05", 300, "Shopping", "E", false),
		testExpense("2025-06-06", 200, "Shopping", "F", false),
		testExpense("2025-06-07", 100, "Shopping", "G", false),
	}

	a := Run(expenses, expenses, nil)

	require.Len(t, a.TopMerchants, 5)
	assert.Equal(t, "A", a.TopMerchants[0].Merchant)
	assert.Equal(t, "E", a.TopMerchants[4].Merchant)
}

func TestRun_FullPipeline(t *testing.T) {
	// June under analysis; April and May only exist in history and feed
	// the recurring detector.
	june := []*domain.Expense{
		testExpense("2025-06-01", 3000, "Rent", "Landlord", true),
		testExpense("2025-06-02", 40, "Food", "Snack Cart", false),
		testExpense("2025-06-08", 55, "Food", "Snack Cart", false),
		testExpense("2025-06-15", 35, "Food", "Snack Cart", false),
		testExpense("2025-06-20", 499, "Entertainment", "Netflix", false),
	}
	history := append([]*domain.Expense{
		testExpense("2025-04-20", 499, "Entertainment", "Netflix", false),
		testExpense("2025-05-20", 499, "Entertainment", "Netflix", false),
	}, june...)
	budgets := []*domain.Budget{
		testBudget("Food", 100, "2025-06"), // spent 130, over by 30
	}

	a := Run(june, history, budgets)

	assert.Equal(t, "3629", a.Total.String())

	require.Len(t, a.BudgetFlags, 1)
	assert.Equal(t, "Food", a.BudgetFlags[0].Category)
	assert.Equal(t, "30", a.BudgetFlags[0].OverBy.String())

	require.Len(t, a.SmallDrains, 1)
	assert.Equal(t, "Snack Cart", a.SmallDrains[0].Merchant)
	assert.Equal(t, 3, a.SmallDrains[0].Count)

	require.Len(t, a.Recurring, 1)
	assert.Equal(t, "Netflix", a.Recurring[0].Merchant)
	assert.Equal(t, 3, a.Recurring[0].Months)
	assert.Equal(t, "499", a.Recurring[0].Mean.String())

	// want = 40+55+35+499 = 629; 629/3629 ~ 17%, below the trim threshold.
	assert.Equal(t, "629", a.WantsNeeds.Want.String())

	suggestions := RankSuggestions(a)
	require.Len(t, suggestions, 4)
	// Recurring 499 > Top merchant 300 > Drains 120 > Budget 30
	assert.Equal(t, "Recurring: Netflix", suggestions[0].Title)
	assert.Equal(t, "Top Merchant: Landlord", suggestions[1].Title)
	assert.Equal(t, "Frequent small spends at Snack Cart", suggestions[2].Title)
	assert.Equal(t, "Over Budget: Food", suggestions[3].Title)
}
