package postgres

import (
	"context"
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = "id, user_id, category, amount, month, created_at, updated_at"

// Create inserts a new budget. The budgets table carries a unique index on
// (user_id, category, month), which backs the one-budget-per-category-month
// invariant the analysis engine assumes.
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO budgets (user_id, category, amount, month)
		VALUES ($1, $2, $3, $4)
		RETURNING `+budgetColumns,
		budget.UserID, budget.Category, amount, budget.Month.String())

	created, err := scanBudget(row)
	if err != nil {
		if isUniqueViolation(err, "budgets_user_id_category_month_key") {
			return nil, domain.ErrBudgetExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a budget by ID, scoped to its owner
func (r *BudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND id = $2`,
		userID, id)

	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// List retrieves budgets for a user with optional filters, by category
func (r *BudgetRepository) List(userID uuid.UUID, filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	args := []any{userID}

	if filters != nil {
		if filters.Month != nil {
			args = append(args, filters.Month.String())
			query += fmt.Sprintf(" AND month = $%d", len(args))
		}
		if filters.Category != nil {
			args = append(args, *filters.Category)
			query += fmt.Sprintf(" AND category = $%d", len(args))
		}
	}

	query += " ORDER BY category ASC"

	return r.queryBudgets(query, args...)
}

// GetByMonth retrieves all budgets for a user in the given month
func (r *BudgetRepository) GetByMonth(userID uuid.UUID, month util.Month) ([]*domain.Budget, error) {
	return r.queryBudgets(
		`SELECT `+budgetColumns+` FROM budgets
		 WHERE user_id = $1 AND month = $2
		 ORDER BY category ASC`,
		userID, month.String())
}

// Update modifies a budget's amount
func (r *BudgetRepository) Update(budget *domain.Budget) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE budgets
		SET amount = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+budgetColumns,
		budget.UserID, budget.ID, amount)

	updated, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) queryBudgets(query string, args ...any) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		b        domain.Budget
		amount   pgtype.Numeric
		monthStr string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &amount, &monthStr, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	month, err := util.ParseMonth(monthStr)
	if err != nil {
		return nil, fmt.Errorf("stored month is malformed: %w", err)
	}
	b.Amount = pgNumericToDecimal(amount)
	b.Month = month
	return &b, nil
}
