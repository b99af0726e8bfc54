package domain

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget caps spending for one category in one calendar month.
// At most one budget exists per (user, category, month).
type Budget struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     util.Month      `json:"month"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type BudgetFilters struct {
	Month    *util.Month
	Category *string
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID uuid.UUID, id int32) (*Budget, error)
	List(userID uuid.UUID, filters *BudgetFilters) ([]*Budget, error)
	GetByMonth(userID uuid.UUID, month util.Month) ([]*Budget, error)
	Update(budget *Budget) (*Budget, error)
	Delete(userID uuid.UUID, id int32) error
}
