package analysis

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testUserID = uuid.MustParse("5cb736f2-65df-4a9e-a9c4-e2ae7f2a3d7b")

var nextTestID int32

func testExpense(date string, amount float64, category, merchant string, isNeed bool) *domain.Expense {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	nextTestID++
	return &domain.Expense{
		ID:       nextTestID,
		UserID:   testUserID,
		Date:     d,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
		Merchant: merchant,
		IsNeed:   isNeed,
	}
}

func testBudget(category string, amount float64, month string) *domain.Budget {
	m, err := util.ParseMonth(month)
	if err != nil {
		panic(err)
	}
	return &domain.Budget{
		UserID:   testUserID,
		Category: category,
		Amount:   decimal.NewFromFloat(amount),
		Month:    m,
	}
}
