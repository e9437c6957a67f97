package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
	"github.com/TWEEDOriginal/serverless-intro/internal/config"
	"github.com/TWEEDOriginal/serverless-intro/internal/handlers"
	"github.com/TWEEDOriginal/serverless-intro/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	Store          storage.ProductStore
	ProductService services.ProductService
	Router         *handlers.Router
}

// NewContainer wires the store, service and router described by cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.NewLogger()

	store, err := storage.NewProductStore(ctx, cfg.StoreConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create product store: %w", err)
	}

	productService, err := services.NewProductService(store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	router, err := handlers.NewRouter(productService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Store:          store,
		ProductService: productService,
		Router:         router,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			return fmt.Errorf("failed to close product store: %w", err)
		}
	}
	return nil
}
