// internal/repository/postgres/movement_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/suqpos/backend-go/internal/domain"
)

type MovementRepository struct {
	db *DB
}

func NewMovementRepository(db *DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) List(ctx context.Context, rng domain.TimeRange) ([]domain.InventoryMovement, error) {
	movements := []domain.InventoryMovement{}
	err := r.db.SelectContext(ctx, &movements, `
		SELECT m.id, m.product_id, p.name AS product_name, m.movement_type, m.quantity, m.total_cost, m.created_at
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		WHERE ($1::timestamptz IS NULL OR m.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR m.created_at <= $2)
		ORDER BY m.created_at DESC`, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	return movements, nil
}
