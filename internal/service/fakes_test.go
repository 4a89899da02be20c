// internal/service/fakes_test.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/suqpos/backend-go/internal/domain"
)

type fakeSaleStore struct {
	mu       sync.Mutex
	sales    []domain.Sale
	listErr  error
	listFn   func() ([]domain.Sale, error)

	recordFn func(line domain.CartLine, cashierID int64) (*domain.Sale, *domain.Product, error)
	recorded []domain.CartLine

	deleteFn func(id int64) (*domain.Sale, error)

	countByProduct map[int64]int
}

func (f *fakeSaleStore) List(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.Sale, error) {
	if f.listFn != nil {
		return f.listFn()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.Sale{}
	for _, s := range f.sales {
		if rng.Contains(s.CreatedAt) {
			out = append(out, s)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSaleStore) Record(ctx context.Context, line domain.CartLine, cashierID int64) (*domain.Sale, *domain.Product, error) {
	f.mu.Lock()
	f.recorded = append(f.recorded, line)
	f.mu.Unlock()
	if f.recordFn != nil {
		return f.recordFn(line, cashierID)
	}
	sale := &domain.Sale{
		ID:        int64(len(f.recorded)),
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Revenue:   line.UnitPrice * float64(line.Quantity),
		CashierID: cashierID,
		CreatedAt: time.Now(),
	}
	return sale, &domain.Product{ID: line.ProductID}, nil
}

func (f *fakeSaleStore) DeleteAndRestoreStock(ctx context.Context, saleID int64) (*domain.Sale, error) {
	if f.deleteFn != nil {
		return f.deleteFn(saleID)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSaleStore) CountByProduct(ctx context.Context, productID int64) (int, error) {
	return f.countByProduct[productID], nil
}

func (f *fakeSaleStore) recordedLines() []domain.CartLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartLine(nil), f.recorded...)
}

type fakeExpenseStore struct {
	expenses []domain.Expense
	listErr  error
	created  []domain.Expense
	deleted  []int64
}

func (f *fakeExpenseStore) List(ctx context.Context, rng domain.TimeRange) ([]domain.Expense, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.Expense{}
	for _, e := range f.expenses {
		if rng.Contains(e.CreatedAt) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) Create(ctx context.Context, e *domain.Expense) error {
	e.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *e)
	return nil
}

func (f *fakeExpenseStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMovementStore struct {
	movements []domain.InventoryMovement
	listErr   error
}

func (f *fakeMovementStore) List(ctx context.Context, rng domain.TimeRange) ([]domain.InventoryMovement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.InventoryMovement{}
	for _, m := range f.movements {
		if rng.Contains(m.CreatedAt) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductStore struct {
	products []domain.Product
	listErr  error
	deleted  []int64
}

func (f *fakeProductStore) List(ctx context.Context) ([]domain.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeProductStore) Get(ctx context.Context, id int64) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductStore) Create(ctx context.Context, p *domain.Product) error {
	p.ID = int64(len(f.products) + 1)
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *domain.Product) error {
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProductStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeNotificationStore struct {
	mu      sync.Mutex
	nextID  int64
	created []domain.Notification
	// createdCh signals each create so tests can wait on async projection.
	createdCh chan domain.Notification
}

func (f *fakeNotificationStore) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Notification{}
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) UnreadCount(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	f.mu.Lock()
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.created = append(f.created, *n)
	f.mu.Unlock()
	if f.createdCh != nil {
		f.createdCh <- *n
	}
	return nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id int64) error    { return nil }
func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, id int64) error { return nil }
func (f *fakeNotificationStore) Delete(ctx context.Context, id int64) error      { return nil }

type fakeUserStore struct {
	ownerIDs []int64
}

func (f *fakeUserStore) OwnerIDs(ctx context.Context) ([]int64, error) {
	return append([]int64(nil), f.ownerIDs...), nil
}

type spySnapshotCache struct {
	mu            sync.Mutex
	stored        *domain.MetricsSnapshot
	hits          int
	sets          int
	invalidations int
}

func (c *spySnapshotCache) Get(ctx context.Context, period domain.Period, rng domain.TimeRange) (*domain.MetricsSnapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored == nil {
		return nil, false, nil
	}
	c.hits++
	return c.stored, true, nil
}

func (c *spySnapshotCache) Set(ctx context.Context, period domain.Period, rng domain.TimeRange, snap *domain.MetricsSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	return nil
}

func (c *spySnapshotCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	return nil
}
