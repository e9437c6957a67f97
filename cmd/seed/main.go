package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
	"github.com/TWEEDOriginal/serverless-intro/internal/config"
	"github.com/TWEEDOriginal/serverless-intro/internal/migration"
)

func main() {
	var (
		jsonPath = flag.String("file", "./products.json", "JSON array of product records")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		dryRun   = flag.Bool("dry-run", false, "Validate records without writing them")
		validate = flag.Bool("validate", true, "Read every imported product back after writing")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := cfg.NewLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absJSONPath, err := filepath.Abs(*jsonPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute JSON path")
	}

	logger.WithFields(logrus.Fields{
		"file":    absJSONPath,
		"table":   cfg.Storage.TableName,
		"backend": cfg.Storage.Backend,
		"dry_run": *dryRun,
	}).Info("Starting product seed tool")

	if err := run(context.Background(), cfg, logger, absJSONPath, *dryRun, *validate); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	logger.Info("Product seed tool completed successfully")
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, jsonPath string, dryRun, validate bool) error {
	var store storage.ProductStore
	if !dryRun {
		var err error
		store, err = storage.NewProductStore(ctx, cfg.StoreConfig(), logger)
		if err != nil {
			return fmt.Errorf("failed to create product store: %w", err)
		}
		defer store.Close()
	}

	migrator := migration.NewJSONMigrator(store, jsonPath, logger)
	if !migrator.CheckJSONFileExists() {
		return fmt.Errorf("products file not found: %s", jsonPath)
	}

	result, err := migrator.MigrateFromJSON(ctx, dryRun)
	if result != nil {
		for _, warning := range result.Warnings {
			logger.Warn(warning)
		}
	}
	if err != nil {
		return err
	}

	if !dryRun && validate {
		if err := migrator.ValidateMigration(ctx); err != nil {
			return fmt.Errorf("post-import validation failed: %w", err)
		}
	}

	return nil
}
