package services

import (
	"context"

	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

// ProductService defines the interface for product inventory operations
type ProductService interface {
	// GetProduct returns the product stored under productID
	GetProduct(ctx context.Context, productID string) (models.Product, error)

	// ListProducts returns every product in the inventory
	ListProducts(ctx context.Context) ([]models.Product, error)

	// CreateProduct saves the product, replacing any existing record with
	// the same productId
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)

	// UpdateProduct applies a single-attribute update and returns the
	// attributes the store reports as changed
	UpdateProduct(ctx context.Context, directive *models.UpdateDirective) (models.Product, error)

	// DeleteProduct removes a product and returns its prior contents
	DeleteProduct(ctx context.Context, directive *models.DeleteDirective) (models.Product, error)
}
