package domain

import "github.com/shopspring/decimal"

// CategoryTotal is the accumulated spend for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MerchantTotal is the accumulated spend at one merchant.
type MerchantTotal struct {
	Merchant string          `json:"merchant"`
	Amount   decimal.Decimal `json:"amount"`
}

// WantsNeeds partitions total spend into discretionary and essential buckets.
// Want + Need always equals the month's total.
type WantsNeeds struct {
	Want decimal.Decimal `json:"want"`
	Need decimal.Decimal `json:"need"`
}

// BudgetFlag records a category whose spend exceeded its budget.
type BudgetFlag struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Budget   decimal.Decimal `json:"budget"`
	OverBy   decimal.Decimal `json:"overBy"`
}

// SmallDrain records a merchant with repeated small discretionary charges.
type SmallDrain struct {
	Merchant string `json:"merchant"`
	Count    int    `json:"count"`
}

// RecurringCharge records a merchant whose per-month spend is stable
// across at least two distinct months, suggestive of a subscription.
type RecurringCharge struct {
	Merchant string          `json:"merchant"`
	Mean     decimal.Decimal `json:"mean"`
	Months   int             `json:"months"`
}

// MonthlyAnalysis is the full analysis result for one (user, month).
// It is a derived value, built fresh per request and never persisted.
type MonthlyAnalysis struct {
	TransactionsInMonth []*Expense        `json:"transactionsInMonth"`
	Total               decimal.Decimal   `json:"total"`
	CategoryTotals      []CategoryTotal   `json:"categoryTotals"`
	TopMerchants        []MerchantTotal   `json:"topMerchants"`
	WantsNeeds          WantsNeeds        `json:"wantsNeeds"`
	BudgetFlags         []BudgetFlag      `json:"budgetFlags"`
	SmallDrains         []SmallDrain      `json:"smallDrains"`
	Outliers            []*Expense        `json:"outliers"`
	Recurring           []RecurringCharge `json:"recurring"`
}

// Suggestion is a ranked savings recommendation. Impact is the estimated
// monthly monetary saving used for ordering.
type Suggestion struct {
	Title  string          `json:"title"`
	Body   string          `json:"body"`
	Impact decimal.Decimal `json:"impact"`
}
