package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

func newTestService(t *testing.T) (ProductService, *storage.MemoryTable) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	table := storage.NewMemoryTable("product-inventory", 0)
	store, err := storage.NewDynamoStore(table, &storage.StorageConfig{TableName: "product-inventory"}, logger)
	require.NoError(t, err)

	svc, err := NewProductService(store, logger)
	require.NoError(t, err)
	return svc, table
}

func TestNewProductServiceRequiresStore(t *testing.T) {
	_, err := NewProductService(nil, nil)
	assert.Error(t, err)
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	product := models.Product{"productId": "p-1", "name": "Baguette", "price": 3.2}
	saved, err := svc.CreateProduct(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, product, saved)

	got, err := svc.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestProductService_ValidationErrors(t *testing.T) {
	svc, table := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetProduct(ctx, "")
	assert.True(t, models.IsValidationError(err))

	_, err = svc.CreateProduct(ctx, models.Product{"name": "no key"})
	assert.True(t, models.IsValidationError(err))

	_, err = svc.UpdateProduct(ctx, &models.UpdateDirective{ProductID: "p-1"})
	assert.True(t, models.IsValidationError(err))

	_, err = svc.DeleteProduct(ctx, &models.DeleteDirective{})
	assert.True(t, models.IsValidationError(err))

	assert.Equal(t, 0, table.Len())
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, models.Product{"productId": "p-1", "name": "Muffin", "price": 2.0})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, &models.UpdateDirective{ProductID: "p-1", UpdateKey: "price", UpdateValue: 9.99})
	require.NoError(t, err)
	assert.Equal(t, models.Product{"price": 9.99}, updated)

	old, err := svc.DeleteProduct(ctx, &models.DeleteDirective{ProductID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, models.Product{"productId": "p-1", "name": "Muffin", "price": 9.99}, old)

	_, err = svc.GetProduct(ctx, "p-1")
	assert.True(t, storage.IsNotFound(err))

	_, err = svc.UpdateProduct(ctx, &models.UpdateDirective{ProductID: "p-1", UpdateKey: "price", UpdateValue: 1.0})
	assert.True(t, storage.IsNotFound(err))
}

func TestProductService_ListProducts(t *testing.T) {
	svc, table := newTestService(t)
	ctx := context.Background()

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	for _, id := range []string{"a", "b", "c"} {
		_, err := svc.CreateProduct(ctx, models.Product{"productId": id})
		require.NoError(t, err)
	}

	products, err = svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	table.FailOn("Scan", errors.New("throttled"))
	_, err = svc.ListProducts(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list products")
}
