package domain

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single dated spend record. Amount is always positive;
// IsNeed distinguishes essential spend from discretionary spend.
type Expense struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Merchant  string          `json:"merchant"`
	Note      *string         `json:"note,omitempty"`
	IsNeed    bool            `json:"isNeed"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ExpenseFilters struct {
	Month    *util.Month
	Category *string
	IsNeed   *bool
	Search   string
	Limit    int32
	Offset   int32
}

const (
	DefaultExpenseLimit = 100
	MaxExpenseLimit     = 1000
)

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(userID uuid.UUID, id int32) (*Expense, error)
	List(userID uuid.UUID, filters *ExpenseFilters) ([]*Expense, error)
	GetByDateRange(userID uuid.UUID, start, end time.Time) ([]*Expense, error)
	GetAllByUser(userID uuid.UUID) ([]*Expense, error)
	Update(expense *Expense) (*Expense, error)
	Delete(userID uuid.UUID, id int32) error
}
