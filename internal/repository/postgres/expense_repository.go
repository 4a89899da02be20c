// internal/repository/postgres/expense_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/suqpos/backend-go/internal/domain"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) List(ctx context.Context, rng domain.TimeRange) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	err := r.db.SelectContext(ctx, &expenses, `
		SELECT id, title, amount, category, COALESCE(description, '') AS description, created_at
		FROM expenses
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC`, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO expenses (title, amount, category, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`,
		e.Title, e.Amount, e.Category, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
