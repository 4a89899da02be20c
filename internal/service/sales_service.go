// internal/service/sales_service.go
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/suqpos/backend-go/internal/analytics"
	"github.com/suqpos/backend-go/internal/cache"
	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/repository"
)

// recentFetchLimit oversamples raw sale lines so that grouping into
// transactions still fills ten groups after merging.
const recentFetchLimit = 20

type SalesService struct {
	sales    repository.SaleStore
	products repository.ProductStore
	hub      *events.Hub
	cache    cache.SnapshotCache
}

func NewSalesService(sales repository.SaleStore, products repository.ProductStore, hub *events.Hub, cacheImpl cache.SnapshotCache) *SalesService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSnapshotCache()
	}
	return &SalesService{sales: sales, products: products, hub: hub, cache: cacheImpl}
}

// CheckoutResult reports how far a checkout got. Lines are recorded one at
// a time, so a failure partway through leaves the earlier lines committed;
// Recorded tells the caller exactly which ones.
type CheckoutResult struct {
	Recorded []domain.Sale    `json:"recorded"`
	Products []domain.Product `json:"products"`
}

// Checkout validates every cart line against the current catalog, then
// records them one per transaction. Validation is all-or-nothing; the
// recording loop is not, and a mid-cart failure returns the partial result
// alongside the error.
func (s *SalesService) Checkout(ctx context.Context, lines []domain.CartLine, cashierID int64) (*CheckoutResult, error) {
	if len(lines) == 0 {
		return nil, domain.NewValidationError("cart is empty")
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity must be positive for product %d", line.ProductID)
		}
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("checkout lookup product %d: %w", line.ProductID, err)
		}
		if line.Quantity > product.Quantity {
			return nil, domain.NewValidationError("only %d of %s in stock", product.Quantity, product.Name)
		}
		if line.UnitPrice < product.SellingPrice {
			return nil, domain.NewValidationError("unit price %.2f undercuts catalog price %.2f for %s", line.UnitPrice, product.SellingPrice, product.Name)
		}
	}

	result := &CheckoutResult{}
	for _, line := range lines {
		sale, product, err := s.sales.Record(ctx, line, cashierID)
		if err != nil {
			s.afterMutation(ctx)
			return result, fmt.Errorf("checkout recorded %d of %d lines: %w", len(result.Recorded), len(lines), err)
		}
		result.Recorded = append(result.Recorded, *sale)
		result.Products = append(result.Products, *product)

		s.hub.Publish(events.Change{Table: events.TableSales, Op: events.OpInsert, Payload: sale})
		s.hub.Publish(events.Change{Table: events.TableProducts, Op: events.OpUpdate, Payload: product})
	}

	s.afterMutation(ctx)
	return result, nil
}

// DeleteSale removes a sale and restores its quantity to the product in
// one transaction.
func (s *SalesService) DeleteSale(ctx context.Context, saleID int64) (*domain.Sale, error) {
	sale, err := s.sales.DeleteAndRestoreStock(ctx, saleID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(events.Change{Table: events.TableSales, Op: events.OpDelete, Payload: sale})
	if product, perr := s.products.Get(ctx, sale.ProductID); perr == nil {
		s.hub.Publish(events.Change{Table: events.TableProducts, Op: events.OpUpdate, Payload: product})
	}
	s.afterMutation(ctx)
	return sale, nil
}

// RecentTransactions fetches the newest sale lines and merges the ones
// recorded within two seconds of each other into checkout transactions,
// returning at most ten.
func (s *SalesService) RecentTransactions(ctx context.Context) ([]domain.Transaction, error) {
	sales, err := s.sales.List(ctx, domain.TimeRange{}, recentFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return analytics.GroupTransactions(sales), nil
}

// List returns raw sale lines for a period, newest first. limit <= 0
// means no limit.
func (s *SalesService) List(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.Sale, error) {
	return s.sales.List(ctx, rng, limit)
}

func (s *SalesService) afterMutation(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sales: cache invalidation failed")
	}
}
