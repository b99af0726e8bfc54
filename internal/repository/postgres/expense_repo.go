package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = "id, user_id, expense_date, amount, category, merchant, note, is_need, created_at, updated_at"

// Create inserts a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO expenses (user_id, expense_date, amount, category, merchant, note, is_need)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+expenseColumns,
		expense.UserID, expense.Date, amount, expense.Category,
		expense.Merchant, stringPtrToPgText(expense.Note), expense.IsNeed)

	return scanExpense(row)
}

// GetByID retrieves an expense by ID, scoped to its owner
func (r *ExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.Expense, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 AND id = $2`,
		userID, id)

	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// List retrieves expenses for a user with optional filters, newest first
func (r *ExpenseRepository) List(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`
	args := []any{userID}

	if filters != nil {
		if filters.Month != nil {
			start, end := filters.Month.Bounds()
			args = append(args, start, end)
			query += fmt.Sprintf(" AND expense_date >= $%d AND expense_date < $%d", len(args)-1, len(args))
		}
		if filters.Category != nil {
			args = append(args, *filters.Category)
			query += fmt.Sprintf(" AND category = $%d", len(args))
		}
		if filters.IsNeed != nil {
			args = append(args, *filters.IsNeed)
			query += fmt.Sprintf(" AND is_need = $%d", len(args))
		}
		if filters.Search != "" {
			args = append(args, "%"+filters.Search+"%")
			n := len(args)
			query += fmt.Sprintf(" AND (merchant ILIKE $%d OR category ILIKE $%d OR note ILIKE $%d)", n, n, n)
		}
	}

	query += " ORDER BY expense_date DESC, id DESC"

	limit := int32(domain.DefaultExpenseLimit)
	offset := int32(0)
	if filters != nil {
		if filters.Limit > 0 {
			limit = filters.Limit
			if limit > domain.MaxExpenseLimit {
				limit = domain.MaxExpenseLimit
			}
		}
		if filters.Offset > 0 {
			offset = filters.Offset
		}
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryExpenses(query, args...)
}

// GetByDateRange retrieves a user's expenses in [start, end), oldest first.
// Ascending date order keeps downstream first-seen tie-breaking stable.
func (r *ExpenseRepository) GetByDateRange(userID uuid.UUID, start, end time.Time) ([]*domain.Expense, error) {
	return r.queryExpenses(
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE user_id = $1 AND expense_date >= $2 AND expense_date < $3
		 ORDER BY expense_date ASC, id ASC`,
		userID, start, end)
}

// GetAllByUser retrieves a user's full expense history, oldest first
func (r *ExpenseRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Expense, error) {
	return r.queryExpenses(
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE user_id = $1
		 ORDER BY expense_date ASC, id ASC`,
		userID)
}

// Update modifies an existing expense
func (r *ExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE expenses
		SET expense_date = $3, amount = $4, category = $5, merchant = $6,
		    note = $7, is_need = $8, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+expenseColumns,
		expense.UserID, expense.ID, expense.Date, amount, expense.Category,
		expense.Merchant, stringPtrToPgText(expense.Note), expense.IsNeed)

	updated, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) queryExpenses(query string, args ...any) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e      domain.Expense
		amount pgtype.Numeric
		note   pgtype.Text
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &amount, &e.Category,
		&e.Merchant, &note, &e.IsNeed, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	e.Note = pgTextToStringPtr(note)
	return &e, nil
}
