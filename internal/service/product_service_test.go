// internal/service/product_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suqpos/backend-go/internal/domain"
	"github.com/suqpos/backend-go/internal/events"
)

func newProductFixture() (*ProductService, *fakeProductStore, *fakeSaleStore, *spySnapshotCache) {
	productStore := &fakeProductStore{products: []domain.Product{
		{ID: 1, Name: "Shirt", CostPrice: 100, SellingPrice: 150, Quantity: 10, MinThreshold: 3},
	}}
	saleStore := &fakeSaleStore{countByProduct: map[int64]int{}}
	cacheSpy := &spySnapshotCache{}
	svc := NewProductService(productStore, saleStore, events.NewHub(), cacheSpy)
	return svc, productStore, saleStore, cacheSpy
}

func TestProductDeleteRefusedWhileSalesReference(t *testing.T) {
	svc, productStore, saleStore, cacheSpy := newProductFixture()
	saleStore.countByProduct[1] = 4

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, domain.IsIntegrity(err))
	assert.Empty(t, productStore.deleted)
	assert.Equal(t, 0, cacheSpy.invalidations)
}

func TestProductDeleteAllowedWithoutSales(t *testing.T) {
	svc, productStore, _, cacheSpy := newProductFixture()

	err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, productStore.deleted)
	assert.Equal(t, 1, cacheSpy.invalidations)
}

func TestProductCreateValidation(t *testing.T) {
	svc, _, _, _ := newProductFixture()

	cases := []struct {
		name    string
		product domain.Product
	}{
		{"missing name", domain.Product{SellingPrice: 10}},
		{"negative cost", domain.Product{Name: "X", CostPrice: -1}},
		{"negative price", domain.Product{Name: "X", SellingPrice: -1}},
		{"negative quantity", domain.Product{Name: "X", Quantity: -1}},
		{"negative threshold", domain.Product{Name: "X", MinThreshold: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.product
			err := svc.Create(context.Background(), &p)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestProductCreateAndUpdate(t *testing.T) {
	svc, productStore, _, cacheSpy := newProductFixture()

	p := domain.Product{Name: "Shoes", CostPrice: 300, SellingPrice: 500, Quantity: 4, MinThreshold: 2}
	require.NoError(t, svc.Create(context.Background(), &p))
	assert.NotZero(t, p.ID)

	p.Quantity = 6
	require.NoError(t, svc.Update(context.Background(), &p))

	stored, err := productStore.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Quantity)
	assert.Equal(t, 2, cacheSpy.invalidations)
}
