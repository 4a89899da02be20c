// internal/service/product_service.go
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/suqpos/backend-go/internal/cache"
	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/repository"
)

type ProductService struct {
	products repository.ProductStore
	sales    repository.SaleStore
	hub      *events.Hub
	cache    cache.SnapshotCache
}

func NewProductService(products repository.ProductStore, sales repository.SaleStore, hub *events.Hub, cacheImpl cache.SnapshotCache) *ProductService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSnapshotCache()
	}
	return &ProductService{products: products, sales: sales, hub: hub, cache: cacheImpl}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}

	s.hub.Publish(events.Change{Table: events.TableProducts, Op: events.OpInsert, Payload: p})
	s.afterMutation(ctx)
	return nil
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}

	s.hub.Publish(events.Change{Table: events.TableProducts, Op: events.OpUpdate, Payload: p})
	s.afterMutation(ctx)
	return nil
}

// Delete removes a product only when no sale references it. History wins
// over cleanup: a product with recorded sales cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	count, err := s.sales.CountByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("check product sales: %w", err)
	}
	if count > 0 {
		return domain.NewIntegrityError("product %d has %d recorded sales and cannot be deleted", id, count)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(events.Change{Table: events.TableProducts, Op: events.OpDelete, Payload: id})
	s.afterMutation(ctx)
	return nil
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return domain.NewValidationError("product name is required")
	}
	if p.CostPrice < 0 || p.SellingPrice < 0 {
		return domain.NewValidationError("prices cannot be negative")
	}
	if p.Quantity < 0 {
		return domain.NewValidationError("quantity cannot be negative")
	}
	if p.MinThreshold < 0 {
		return domain.NewValidationError("minimum threshold cannot be negative")
	}
	return nil
}

func (s *ProductService) afterMutation(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("products: cache invalidation failed")
	}
}
