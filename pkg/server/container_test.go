package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/TWEEDOriginal/serverless-intro/internal/config"
	"github.com/TWEEDOriginal/serverless-intro/pkg/lambda"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		Log: config.LogConfig{
			Level:  "error",
			Format: "text",
		},
		Storage: config.StorageConfig{
			Backend:   "memory",
			TableName: "product-inventory",
		},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.Logger == nil {
		t.Error("Logger is nil")
	}
	if container.Store == nil {
		t.Error("Store is nil")
	}
	if container.ProductService == nil {
		t.Error("ProductService is nil")
	}
	if container.Router == nil {
		t.Error("Router is nil")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestContainerWiring verifies that the router reaches the configured store
func TestContainerWiring(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(ctx, testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	resp := container.Router.Route(ctx, &lambda.Request{
		Method: http.MethodPost,
		Path:   "/product",
		Body:   []byte(`{"productId":"p-1","name":"Scone"}`),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, resp.Body)
	}

	product, err := container.Store.Read(ctx, "p-1")
	if err != nil {
		t.Fatalf("Failed to read product: %v", err)
	}
	if product["name"] != "Scone" {
		t.Errorf("Expected name Scone, got %v", product["name"])
	}

	got, err := container.ProductService.GetProduct(ctx, "p-1")
	if err != nil {
		t.Fatalf("Failed to get product: %v", err)
	}
	if got.ID() != "p-1" {
		t.Errorf("Expected productId p-1, got %s", got.ID())
	}
}

// TestNewContainerRejectsInvalidConfig covers configuration failures
func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewContainer(context.Background(), nil); err == nil {
		t.Error("Expected error for nil config")
	}

	cfg := testConfig()
	cfg.Storage.Backend = "sqlite"
	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Error("Expected error for unsupported backend")
	}

	cfg = testConfig()
	cfg.Storage.TableName = ""
	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Error("Expected error for missing table name")
	}
}
