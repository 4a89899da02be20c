// internal/service/metrics_service.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/suqpos/backend-go/internal/analytics"
	"github.com/suqpos/backend-go/internal/cache"
	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/repository"
)

// MetricsService computes dashboard snapshots. All four source fetches run
// in parallel and the computation is all-or-nothing: one failed fetch
// aborts the whole snapshot, and the previously published snapshot stays
// in place.
type MetricsService struct {
	sales     repository.SaleStore
	expenses  repository.ExpenseStore
	movements repository.MovementStore
	products  repository.ProductStore
	cache     cache.SnapshotCache

	mu        sync.Mutex
	seq       uint64
	latestSeq uint64
	latest    *domain.MetricsSnapshot

	now func() time.Time
}

func NewMetricsService(
	sales repository.SaleStore,
	expenses repository.ExpenseStore,
	movements repository.MovementStore,
	products repository.ProductStore,
	cacheImpl cache.SnapshotCache,
) *MetricsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSnapshotCache()
	}
	return &MetricsService{
		sales:     sales,
		expenses:  expenses,
		movements: movements,
		products:  products,
		cache:     cacheImpl,
		now:       time.Now,
	}
}

// Snapshot resolves the period, fetches all sources concurrently and
// aggregates them. Responses are fenced by a monotonic sequence: when two
// computations overlap, only the newest one may publish, so a slow stale
// response can never overwrite a fresher snapshot.
func (s *MetricsService) Snapshot(ctx context.Context, period domain.Period, start, end *time.Time) (*domain.MetricsSnapshot, error) {
	now := s.now()
	rng, err := period.Resolve(now, start, end)
	if err != nil {
		return nil, err
	}

	if snap, ok, err := s.cache.Get(ctx, period, rng); err == nil && ok {
		return snap, nil
	} else if err != nil {
		log.Warn().Err(err).Str("period", string(period)).Msg("metrics: cache get failed")
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	sources, err := s.fetchSources(ctx, rng)
	if err != nil {
		return nil, err
	}

	snap := analytics.Aggregate(analytics.Input{
		Period:    period,
		Sales:     sources.sales,
		Expenses:  sources.expenses,
		Movements: sources.movements,
		Products:  sources.products,
		Now:       now,
	})

	s.mu.Lock()
	won := seq > s.latestSeq
	if won {
		s.latestSeq = seq
		s.latest = snap
	}
	s.mu.Unlock()

	// A computation that lost the race to a newer one must not touch the
	// cache either, or it would overwrite the fresher entry until TTL.
	if won {
		if err := s.cache.Set(ctx, period, rng, snap); err != nil {
			log.Warn().Err(err).Str("period", string(period)).Msg("metrics: cache set failed")
		}
	}

	return snap, nil
}

// Latest returns the most recently published snapshot, or nil when none
// has been computed yet. Useful for clients that want to keep rendering
// stale data while a refresh is in flight or has failed.
func (s *MetricsService) Latest() *domain.MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// TimeSeries bucketizes the period's sales and expenses for charting.
// Only week, month and year have a defined bucket layout.
func (s *MetricsService) TimeSeries(ctx context.Context, period domain.Period) ([]domain.TimeSeriesPoint, error) {
	switch period {
	case domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear:
	default:
		return nil, domain.NewValidationError("period %q has no time series", period)
	}

	now := s.now()
	rng, err := period.Resolve(now, nil, nil)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	var (
		sales    []domain.Sale
		expenses []domain.Expense
	)
	g.Go(func() error {
		var err error
		if sales, err = s.sales.List(gctx, rng, 0); err != nil {
			return &domain.CompositeFetchError{Source: "sales", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = s.expenses.List(gctx, rng); err != nil {
			return &domain.CompositeFetchError{Source: "expenses", Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analytics.TimeSeries(sales, expenses, period, now), nil
}

type metricsSources struct {
	sales     []domain.Sale
	expenses  []domain.Expense
	movements []domain.InventoryMovement
	products  []domain.Product
}

func (s *MetricsService) fetchSources(ctx context.Context, rng domain.TimeRange) (*metricsSources, error) {
	g, gctx := errgroup.WithContext(ctx)

	out := &metricsSources{}
	g.Go(func() error {
		var err error
		if out.sales, err = s.sales.List(gctx, rng, 0); err != nil {
			return &domain.CompositeFetchError{Source: "sales", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if out.expenses, err = s.expenses.List(gctx, rng); err != nil {
			return &domain.CompositeFetchError{Source: "expenses", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if out.movements, err = s.movements.List(gctx, rng); err != nil {
			return &domain.CompositeFetchError{Source: "movements", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if out.products, err = s.products.List(gctx); err != nil {
			return &domain.CompositeFetchError{Source: "products", Err: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
