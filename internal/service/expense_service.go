// internal/service/expense_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/suqpos/backend-go/internal/cache"
	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/repository"
)

type ExpenseService struct {
	expenses repository.ExpenseStore
	hub      *events.Hub
	cache    cache.SnapshotCache
}

func NewExpenseService(expenses repository.ExpenseStore, hub *events.Hub, cacheImpl cache.SnapshotCache) *ExpenseService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSnapshotCache()
	}
	return &ExpenseService{expenses: expenses, hub: hub, cache: cacheImpl}
}

func (s *ExpenseService) List(ctx context.Context, rng domain.TimeRange) ([]domain.Expense, error) {
	return s.expenses.List(ctx, rng)
}

func (s *ExpenseService) Create(ctx context.Context, e *domain.Expense) error {
	if e.Title == "" {
		return domain.NewValidationError("expense title is required")
	}
	if e.Amount < 0 {
		return domain.NewValidationError("expense amount cannot be negative")
	}
	e.Category = domain.NormalizeCategory(e.Category)

	if err := s.expenses.Create(ctx, e); err != nil {
		return err
	}

	s.hub.Publish(events.Change{Table: events.TableExpenses, Op: events.OpInsert, Payload: e})
	s.afterMutation(ctx)
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(events.Change{Table: events.TableExpenses, Op: events.OpDelete, Payload: id})
	s.afterMutation(ctx)
	return nil
}

func (s *ExpenseService) afterMutation(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("expenses: cache invalidation failed")
	}
}
