package analysis

import (
	"fmt"
	"sort"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const maxSuggestions = 5

var (
	wantRatioThreshold  = decimal.NewFromFloat(0.3)
	wantTrimRate        = decimal.NewFromFloat(0.2)
	overageCapRate      = decimal.NewFromFloat(0.25)
	drainUnitCost       = decimal.NewFromInt(100)
	drainRecoveryRate   = decimal.NewFromFloat(0.4)
	merchantTrimRate    = decimal.NewFromFloat(0.1)
	recurringMeanCutoff = decimal.NewFromInt(200)
)

// RankSuggestions turns an analysis into at most five savings suggestions,
// each with an estimated monetary impact, sorted descending by impact.
// Every rule fires independently; an analysis that triggers nothing yields
// an empty list.
func RankSuggestions(a *domain.MonthlyAnalysis) []domain.Suggestion {
	var suggestions []domain.Suggestion

	if a.WantsNeeds.Want.IsPositive() {
		denom := a.Total
		if denom.IsZero() {
			denom = decimal.NewFromInt(1)
		}
		ratio := a.WantsNeeds.Want.Div(denom)
		if ratio.GreaterThan(wantRatioThreshold) {
			suggestions = append(suggestions, domain.Suggestion{
				Title: "Trim Wants",
				Body: fmt.Sprintf(
					"Your discretionary (wants) spend is %s%% of this month's expenses. Aim for 20-30%%. Try a no-delivery week and make coffee at home.",
					ratio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
				Impact: a.WantsNeeds.Want.Mul(wantTrimRate),
			})
		}
	}

	if len(a.BudgetFlags) > 0 {
		flag := a.BudgetFlags[0]
		suggestions = append(suggestions, domain.Suggestion{
			Title: fmt.Sprintf("Over Budget: %s", flag.Category),
			Body: fmt.Sprintf(
				"You've exceeded the %s budget by %s. Set a weekly cap of %s.",
				flag.Category, flag.OverBy.StringFixed(0),
				flag.Budget.Div(decimal.NewFromInt(4)).StringFixed(0)),
			Impact: decimal.Min(flag.OverBy, flag.Amount.Mul(overageCapRate)),
		})
	}

	if len(a.SmallDrains) > 0 {
		drain := a.SmallDrains[0]
		suggestions = append(suggestions, domain.Suggestion{
			Title: fmt.Sprintf("Frequent small spends at %s", drain.Merchant),
			Body: fmt.Sprintf(
				"You made %d+ small purchases (under %s). Bundle purchases or set a daily limit of 100 for impulse buys.",
				drain.Count, smallDrainLimit.StringFixed(0)),
			Impact: drainUnitCost.Mul(decimal.NewFromInt(int64(drain.Count))).Mul(drainRecoveryRate),
		})
	}

	if len(a.TopMerchants) > 0 {
		top := a.TopMerchants[0]
		suggestions = append(suggestions, domain.Suggestion{
			Title: fmt.Sprintf("Top Merchant: %s", top.Merchant),
			Body: fmt.Sprintf(
				"Consider alternatives or promo codes. Even a 10%% reduction saves %s this month.",
				top.Amount.Mul(merchantTrimRate).StringFixed(0)),
			Impact: top.Amount.Mul(merchantTrimRate),
		})
	}

	for _, rec := range a.Recurring {
		if rec.Mean.GreaterThanOrEqual(recurringMeanCutoff) {
			suggestions = append(suggestions, domain.Suggestion{
				Title: fmt.Sprintf("Recurring: %s", rec.Merchant),
				Body: fmt.Sprintf(
					"Looks recurring (~%s / month). If unused, pause or downgrade.",
					rec.Mean.StringFixed(0)),
				Impact: rec.Mean,
			})
			break
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Impact.GreaterThan(suggestions[j].Impact)
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions
}
