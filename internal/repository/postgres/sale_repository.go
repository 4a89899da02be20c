// internal/repository/postgres/sale_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/suqpos/backend-go/internal/domain"
)

type SaleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *SaleRepository {
	return &SaleRepository{db: db}
}

const saleColumns = `
	s.id, s.product_id, p.name AS product_name, p.cost_price, p.selling_price,
	s.quantity, s.revenue, s.profit, s.cashier_id, s.created_at`

// List returns sales joined with current product name/cost/price, newest
// first. Nil range bounds are unbounded.
func (r *SaleRepository) List(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE ($1::timestamptz IS NULL OR s.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR s.created_at <= $2)
		ORDER BY s.created_at DESC`
	args := []any{rng.From, rng.To}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	sales := []domain.Sale{}
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// Record inserts one sale line and decrements the product's stock in a
// single transaction. Revenue and profit are fixed here from the unit
// price charged and the product's cost at time of sale.
func (r *SaleRepository) Record(ctx context.Context, line domain.CartLine, cashierID int64) (*domain.Sale, *domain.Product, error) {
	var (
		sale    domain.Sale
		product domain.Product
	)
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &product, `
			SELECT id, name, cost_price, selling_price, quantity, min_threshold, created_at, updated_at
			FROM products
			WHERE id = $1
			FOR UPDATE`, line.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock product: %w", err)
		}

		if line.Quantity > product.Quantity {
			return domain.NewValidationError("quantity %d exceeds stock %d for %s",
				line.Quantity, product.Quantity, product.Name)
		}

		revenue := line.UnitPrice * float64(line.Quantity)
		profit := (line.UnitPrice - product.CostPrice) * float64(line.Quantity)

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO sales (product_id, quantity, revenue, profit, cashier_id, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING id, created_at`,
			line.ProductID, line.Quantity, revenue, profit, cashierID,
		).Scan(&sale.ID, &sale.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2`,
			line.Quantity, line.ProductID); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		sale.ProductID = line.ProductID
		sale.ProductName = product.Name
		sale.CostPrice = product.CostPrice
		sale.SellingPrice = product.SellingPrice
		sale.Quantity = line.Quantity
		sale.Revenue = revenue
		sale.Profit = profit
		sale.CashierID = cashierID
		product.Quantity -= line.Quantity
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &sale, &product, nil
}

// DeleteAndRestoreStock removes a sale and gives its quantity back to the
// product, atomically.
func (r *SaleRepository) DeleteAndRestoreStock(ctx context.Context, saleID int64) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &sale, `
			SELECT `+saleColumns+`
			FROM sales s
			JOIN products p ON p.id = s.product_id
			WHERE s.id = $1
			FOR UPDATE OF s, p`, saleID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load sale: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2`,
			sale.Quantity, sale.ProductID); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, saleID); err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) CountByProduct(ctx context.Context, productID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sales WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("count sales by product: %w", err)
	}
	return count, nil
}
