package domain

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is an image attached to an expense, stored in object storage.
type Receipt struct {
	ID            int32     `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	ExpenseID     int32     `json:"expenseId"`
	ObjectPath    string    `json:"-"`
	ThumbnailPath string    `json:"-"`
	ContentType   string    `json:"contentType"`
	SizeBytes     int64     `json:"sizeBytes"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ReceiptRepository interface {
	Create(receipt *Receipt) (*Receipt, error)
	GetByExpense(userID uuid.UUID, expenseID int32) (*Receipt, error)
	Delete(userID uuid.UUID, expenseID int32) error
}
