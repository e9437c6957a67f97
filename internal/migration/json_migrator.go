package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

// JSONMigrator loads products from a JSON array file into the product table
type JSONMigrator struct {
	store    storage.ProductStore
	logger   *logrus.Logger
	jsonPath string
}

// NewJSONMigrator creates a new JSON migrator. store may be nil for dry runs.
func NewJSONMigrator(store storage.ProductStore, jsonPath string, logger *logrus.Logger) *JSONMigrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &JSONMigrator{
		store:    store,
		logger:   logger,
		jsonPath: jsonPath,
	}
}

// MigrationResult contains the results of the migration
type MigrationResult struct {
	ProductsRead    int
	ProductsWritten int
	ProductsSkipped int
	Errors          []string
	Warnings        []string
}

// CheckJSONFileExists reports whether the source file is present
func (m *JSONMigrator) CheckJSONFileExists() bool {
	info, err := os.Stat(m.jsonPath)
	return err == nil && !info.IsDir()
}

// LoadProducts reads the source file. Each element must be a JSON object.
func (m *JSONMigrator) LoadProducts() ([]models.Product, error) {
	data, err := os.ReadFile(m.jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	return products, nil
}

// MigrateFromJSON validates every product in the file and writes the valid
// ones. Invalid records are skipped and reported as warnings. With dryRun set
// nothing is written.
func (m *JSONMigrator) MigrateFromJSON(ctx context.Context, dryRun bool) (*MigrationResult, error) {
	if !dryRun && m.store == nil {
		return nil, fmt.Errorf("product store is required unless running dry")
	}

	m.logger.WithFields(logrus.Fields{
		"file":    m.jsonPath,
		"dry_run": dryRun,
	}).Info("Starting product import...")

	products, err := m.LoadProducts()
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{
		ProductsRead: len(products),
		Errors:       make([]string, 0),
		Warnings:     make([]string, 0),
	}

	seen := make(map[string]int, len(products))
	for i, product := range products {
		if err := product.Validate(); err != nil {
			result.ProductsSkipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("record %d skipped: %v", i, err))
			continue
		}

		id := product.ID()
		if prev, ok := seen[id]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("record %d overwrites record %d (productId %s)", i, prev, id))
		}
		seen[id] = i

		if dryRun {
			m.logger.WithField("product_id", id).Debug("Would write product")
			result.ProductsWritten++
			continue
		}

		if _, err := m.store.WriteFull(ctx, product); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d (productId %s): %v", i, id, err))
			m.logger.WithError(err).WithField("product_id", id).Error("Failed to write product")
			continue
		}

		m.logger.WithField("product_id", id).Debug("Product written")
		result.ProductsWritten++
	}

	m.logger.WithFields(logrus.Fields{
		"read":     result.ProductsRead,
		"written":  result.ProductsWritten,
		"skipped":  result.ProductsSkipped,
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
		"dry_run":  dryRun,
	}).Info("Product import completed")

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("product import completed with %d errors", len(result.Errors))
	}

	return result, nil
}

// ValidateMigration reads back every valid product from the file and
// checks it is present in the table
func (m *JSONMigrator) ValidateMigration(ctx context.Context) error {
	if m.store == nil {
		return fmt.Errorf("product store is required for validation")
	}

	products, err := m.LoadProducts()
	if err != nil {
		return err
	}

	missing := 0
	for _, product := range products {
		if product.Validate() != nil {
			continue
		}
		if _, err := m.store.Read(ctx, product.ID()); err != nil {
			if storage.IsNotFound(err) {
				missing++
				m.logger.WithField("product_id", product.ID()).Warn("Imported product is missing")
				continue
			}
			return fmt.Errorf("failed to read back product %s: %w", product.ID(), err)
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d imported products are missing from the table", missing)
	}

	m.logger.Info("Product import validation passed")
	return nil
}
