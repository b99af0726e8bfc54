package postgres

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReceiptRepository implements domain.ReceiptRepository using PostgreSQL
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository creates a new ReceiptRepository
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

const receiptColumns = "id, user_id, expense_id, object_path, thumbnail_path, content_type, size_bytes, created_at"

// Create inserts a receipt record for an expense
func (r *ReceiptRepository) Create(receipt *domain.Receipt) (*domain.Receipt, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO receipts (user_id, expense_id, object_path, thumbnail_path, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+receiptColumns,
		receipt.UserID, receipt.ExpenseID, receipt.ObjectPath,
		receipt.ThumbnailPath, receipt.ContentType, receipt.SizeBytes)

	return scanReceipt(row)
}

// GetByExpense retrieves the receipt attached to an expense
func (r *ReceiptRepository) GetByExpense(userID uuid.UUID, expenseID int32) (*domain.Receipt, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+receiptColumns+` FROM receipts WHERE user_id = $1 AND expense_id = $2`,
		userID, expenseID)

	receipt, err := scanReceipt(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}
	return receipt, nil
}

// Delete removes the receipt record for an expense
func (r *ReceiptRepository) Delete(userID uuid.UUID, expenseID int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM receipts WHERE user_id = $1 AND expense_id = $2`, userID, expenseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}

func scanReceipt(row pgx.Row) (*domain.Receipt, error) {
	var rec domain.Receipt
	err := row.Scan(&rec.ID, &rec.UserID, &rec.ExpenseID, &rec.ObjectPath,
		&rec.ThumbnailPath, &rec.ContentType, &rec.SizeBytes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
