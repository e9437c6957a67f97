package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

// productService implements the ProductService interface
type productService struct {
	store  storage.ProductStore
	logger *logrus.Logger
}

// NewProductService creates a new product service instance
func NewProductService(store storage.ProductStore, logger *logrus.Logger) (ProductService, error) {
	if store == nil {
		return nil, fmt.Errorf("product store cannot be nil")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &productService{
		store:  store,
		logger: logger,
	}, nil
}

// GetProduct retrieves a product by its primary key
func (s *productService) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	if err := models.ValidateRequired(productID, models.PrimaryKey); err != nil {
		return nil, err
	}

	product, err := s.store.Read(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts scans the whole table
func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// CreateProduct writes the submitted record as-is
func (s *productService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.store.WriteFull(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operation":  "SAVE",
		"product_id": product.ID(),
	}).Info("Product saved")

	return saved, nil
}

// UpdateProduct sets one attribute on an existing product
func (s *productService) UpdateProduct(ctx context.Context, directive *models.UpdateDirective) (models.Product, error) {
	if err := directive.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdatePartial(ctx, directive.ProductID, directive.UpdateKey, directive.UpdateValue)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operation":  "UPDATE",
		"product_id": directive.ProductID,
		"attribute":  directive.UpdateKey,
	}).Info("Product updated")

	return updated, nil
}

// DeleteProduct removes a product
func (s *productService) DeleteProduct(ctx context.Context, directive *models.DeleteDirective) (models.Product, error) {
	if err := directive.Validate(); err != nil {
		return nil, err
	}

	old, err := s.store.Delete(ctx, directive.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"operation":  "DELETE",
		"product_id": directive.ProductID,
	}).Info("Product deleted")

	return old, nil
}
