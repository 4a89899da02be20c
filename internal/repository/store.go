// internal/repository/store.go
package repository

import (
	"context"

	"github.com/suqpos/backend-go/internal/domain"
)

// ProductStore is the catalog collaborator. The product list is never
// time-filtered; it always reflects current state.
type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// SaleStore records and queries sales. Record and DeleteAndRestoreStock
// are atomic per sale: the sale row and the stock adjustment land in one
// transaction.
type SaleStore interface {
	// List returns sales joined with product name/cost/price, newest
	// first. limit <= 0 means no limit.
	List(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.Sale, error)
	// Record inserts one sale line and decrements stock, returning the
	// stored sale and the product's post-decrement state.
	Record(ctx context.Context, line domain.CartLine, cashierID int64) (*domain.Sale, *domain.Product, error)
	// DeleteAndRestoreStock removes a sale and restores its quantity to
	// the product, returning the deleted sale.
	DeleteAndRestoreStock(ctx context.Context, saleID int64) (*domain.Sale, error)
	CountByProduct(ctx context.Context, productID int64) (int, error)
}

type ExpenseStore interface {
	List(ctx context.Context, rng domain.TimeRange) ([]domain.Expense, error)
	Create(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id int64) error
}

// MovementStore reads stock replenishment history; movements are produced
// elsewhere and are read-only inputs to the aggregator.
type MovementStore interface {
	List(ctx context.Context, rng domain.TimeRange) ([]domain.InventoryMovement, error)
}

type NotificationStore interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, n *domain.Notification) error
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
}

// UserStore anchors notification fan-out; authentication lives elsewhere.
type UserStore interface {
	OwnerIDs(ctx context.Context) ([]int64, error)
}
