// internal/service/metrics_service_test.go
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suqpos/backend-go/internal/domain"
)

var metricsNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func newMetricsFixture() (*MetricsService, *fakeSaleStore, *fakeExpenseStore, *spySnapshotCache) {
	sales := &fakeSaleStore{sales: []domain.Sale{
		{ID: 1, ProductName: "Shirt", Quantity: 3, Revenue: 450, Profit: 150, CreatedAt: metricsNow.Add(-time.Hour)},
	}}
	expenses := &fakeExpenseStore{expenses: []domain.Expense{
		{ID: 1, Title: "Rent", Amount: 1500, Category: domain.CategoryRent, CreatedAt: metricsNow.Add(-2 * time.Hour)},
	}}
	movements := &fakeMovementStore{}
	products := &fakeProductStore{products: []domain.Product{
		{ID: 1, Name: "Shirt", CostPrice: 100, SellingPrice: 150, Quantity: 7, MinThreshold: 5},
	}}
	cacheSpy := &spySnapshotCache{}

	svc := NewMetricsService(sales, expenses, movements, products, cacheSpy)
	svc.now = func() time.Time { return metricsNow }
	return svc, sales, expenses, cacheSpy
}

func TestSnapshotAggregatesAllSources(t *testing.T) {
	svc, _, _, cacheSpy := newMetricsFixture()

	snap, err := svc.Snapshot(context.Background(), domain.PeriodAll, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 450.0, snap.TotalRevenue)
	assert.Equal(t, 150.0, snap.TotalProfit)
	assert.Equal(t, 1500.0, snap.TotalExpenses)
	assert.Equal(t, 1, snap.LowStockCount)
	assert.Equal(t, 1, cacheSpy.sets)
	assert.Same(t, snap, svc.Latest())
}

func TestSnapshotServedFromCache(t *testing.T) {
	svc, salesStore, _, cacheSpy := newMetricsFixture()
	cached := &domain.MetricsSnapshot{TotalRevenue: 999}
	cacheSpy.stored = cached

	salesStore.listErr = errors.New("db down")

	snap, err := svc.Snapshot(context.Background(), domain.PeriodAll, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 999.0, snap.TotalRevenue)
	assert.Equal(t, 1, cacheSpy.hits)
}

func TestSnapshotCompositeFailureKeepsLatest(t *testing.T) {
	svc, _, expenseStore, _ := newMetricsFixture()

	first, err := svc.Snapshot(context.Background(), domain.PeriodAll, nil, nil)
	require.NoError(t, err)

	expenseStore.listErr = errors.New("db down")

	_, err = svc.Snapshot(context.Background(), domain.PeriodAll, nil, nil)
	require.Error(t, err)
	assert.True(t, domain.IsCompositeFetch(err))

	var cfe *domain.CompositeFetchError
	require.ErrorAs(t, err, &cfe)
	assert.Equal(t, "expenses", cfe.Source)

	assert.Same(t, first, svc.Latest())
}

func TestSnapshotFencingDiscardsStaleResult(t *testing.T) {
	svc, salesStore, _, cacheSpy := newMetricsFixture()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	salesStore.listFn = func() ([]domain.Sale, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return []domain.Sale{{ID: 1, ProductName: "Old", Revenue: 100, Quantity: 1, CreatedAt: metricsNow}}, nil
		}
		return []domain.Sale{{ID: 2, ProductName: "New", Revenue: 200, Quantity: 1, CreatedAt: metricsNow}}, nil
	}

	staleDone := make(chan struct{})
	go func() {
		defer close(staleDone)
		_, err := svc.Snapshot(context.Background(), domain.PeriodAll, nil, nil)
		assert.NoError(t, err)
	}()

	<-started

	fresh, err := svc.Snapshot(context.Background(), domain.PeriodAll, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 200.0, fresh.TotalRevenue)

	close(release)
	<-staleDone

	// The slower, older computation must not overwrite the newer one,
	// and must not write the cache either.
	assert.Equal(t, 200.0, svc.Latest().TotalRevenue)
	assert.Equal(t, 1, cacheSpy.sets)
}

func TestSnapshotCustomPeriodRequiresBothBounds(t *testing.T) {
	svc, _, _, _ := newMetricsFixture()

	start := metricsNow.Add(-24 * time.Hour)

	_, err := svc.Snapshot(context.Background(), domain.PeriodCustom, &start, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Snapshot(context.Background(), domain.PeriodCustom, nil, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestTimeSeriesOnlyForBucketedPeriods(t *testing.T) {
	svc, _, _, _ := newMetricsFixture()

	points, err := svc.TimeSeries(context.Background(), domain.PeriodWeek)
	require.NoError(t, err)
	assert.Len(t, points, 7)

	_, err = svc.TimeSeries(context.Background(), domain.PeriodToday)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.TimeSeries(context.Background(), domain.PeriodAll)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestTimeSeriesWrapsFetchFailure(t *testing.T) {
	svc, salesStore, _, _ := newMetricsFixture()
	salesStore.listErr = errors.New("db down")

	_, err := svc.TimeSeries(context.Background(), domain.PeriodWeek)
	require.Error(t, err)
	assert.True(t, domain.IsCompositeFetch(err))
}
