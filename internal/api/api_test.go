// internal/api/api_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suqpos/backend-go/internal/config"
	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
	"github.com/suqpos/backend-go/internal/export"
	"github.com/suqpos/backend-go/internal/service"
)

type memProductStore struct {
	products map[int64]domain.Product
}

func (s *memProductStore) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProductStore) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *memProductStore) Create(ctx context.Context, p *domain.Product) error {
	p.ID = int64(len(s.products) + 1)
	s.products[p.ID] = *p
	return nil
}

func (s *memProductStore) Update(ctx context.Context, p *domain.Product) error {
	if _, ok := s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *memProductStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

type memSaleStore struct {
	sales          []domain.Sale
	countByProduct map[int64]int
}

func (s *memSaleStore) List(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.Sale, error) {
	out := []domain.Sale{}
	for _, sale := range s.sales {
		if rng.Contains(sale.CreatedAt) {
			out = append(out, sale)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memSaleStore) Record(ctx context.Context, line domain.CartLine, cashierID int64) (*domain.Sale, *domain.Product, error) {
	sale := domain.Sale{
		ID:        int64(len(s.sales) + 1),
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Revenue:   line.UnitPrice * float64(line.Quantity),
		CashierID: cashierID,
		CreatedAt: time.Now(),
	}
	s.sales = append(s.sales, sale)
	return &sale, &domain.Product{ID: line.ProductID}, nil
}

func (s *memSaleStore) DeleteAndRestoreStock(ctx context.Context, saleID int64) (*domain.Sale, error) {
	for i, sale := range s.sales {
		if sale.ID == saleID {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			return &sale, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memSaleStore) CountByProduct(ctx context.Context, productID int64) (int, error) {
	return s.countByProduct[productID], nil
}

type memExpenseStore struct {
	expenses []domain.Expense
}

func (s *memExpenseStore) List(ctx context.Context, rng domain.TimeRange) ([]domain.Expense, error) {
	return s.expenses, nil
}

func (s *memExpenseStore) Create(ctx context.Context, e *domain.Expense) error {
	e.ID = int64(len(s.expenses) + 1)
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *memExpenseStore) Delete(ctx context.Context, id int64) error { return nil }

type memMovementStore struct{}

func (s *memMovementStore) List(ctx context.Context, rng domain.TimeRange) ([]domain.InventoryMovement, error) {
	return []domain.InventoryMovement{}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memProductStore, *memSaleStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productStore := &memProductStore{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Shirt", CostPrice: 100, SellingPrice: 150, Quantity: 10, MinThreshold: 3},
	}}
	saleStore := &memSaleStore{countByProduct: map[int64]int{}}
	expenseStore := &memExpenseStore{}
	movementStore := &memMovementStore{}
	hub := events.NewHub()

	reporter, err := export.NewReporter(config.StorageConfig{})
	require.NoError(t, err)

	services := &Services{
		Metrics:  service.NewMetricsService(saleStore, expenseStore, movementStore, productStore, nil),
		Sales:    service.NewSalesService(saleStore, productStore, hub, nil),
		Products: service.NewProductService(productStore, saleStore, hub, nil),
		Expenses: service.NewExpenseService(expenseStore, hub, nil),
		Reporter: reporter,
		Hub:      hub,
	}
	return NewRouter(services, []string{"*"}), productStore, saleStore
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMetricsEndpointReturnsSnapshot(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/metrics?period=all", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap domain.MetricsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, domain.PeriodAll, snap.Period)
	assert.Len(t, snap.Products, 1)
	assert.Equal(t, 0, snap.LowStockCount)
}

func TestMetricsCustomPeriodWithoutBoundsIsBadRequest(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/metrics?period=custom", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsUnknownPeriodIsBadRequest(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/metrics?period=fortnight", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutEndpointRecordsSale(t *testing.T) {
	router, _, saleStore := newTestRouter(t)

	body := `{"cashier_id": 7, "lines": [{"product_id": 1, "quantity": 2, "unit_price": 150}]}`
	w := doRequest(router, http.MethodPost, "/api/v1/sales/checkout", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, saleStore.sales, 1)
}

func TestCheckoutUndercutIsBadRequest(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := `{"cashier_id": 7, "lines": [{"product_id": 1, "quantity": 1, "unit_price": 100}]}`
	w := doRequest(router, http.MethodPost, "/api/v1/sales/checkout", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductDeleteWithSalesIsConflict(t *testing.T) {
	router, _, saleStore := newTestRouter(t)
	saleStore.countByProduct[1] = 2

	w := doRequest(router, http.MethodDelete, "/api/v1/products/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProductGetMissingIsNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/products/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaleDeleteMissingIsNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodDelete, "/api/v1/sales/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsExportServesCSVInline(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/metrics/export?period=all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "total_revenue")
}
