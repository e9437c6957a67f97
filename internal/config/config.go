package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Storage     StorageConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// StorageConfig holds product table configuration
type StorageConfig struct {
	Backend        string // "dynamodb" or "memory"
	TableName      string
	Region         string
	Endpoint       string
	ScanPageSize   int
	ConsistentRead bool
	MaxAttempts    int
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8081")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORAGE_BACKEND", "dynamodb")
	v.SetDefault("TABLE_NAME", "product-inventory")
	v.SetDefault("AWS_REGION", "eu-central-1")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("SCAN_PAGE_SIZE", 0)
	v.SetDefault("CONSISTENT_READ", false)
	v.SetDefault("AWS_MAX_ATTEMPTS", 3)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Storage: StorageConfig{
			Backend:        strings.ToLower(v.GetString("STORAGE_BACKEND")),
			TableName:      v.GetString("TABLE_NAME"),
			Region:         v.GetString("AWS_REGION"),
			Endpoint:       v.GetString("DYNAMODB_ENDPOINT"),
			ScanPageSize:   v.GetInt("SCAN_PAGE_SIZE"),
			ConsistentRead: v.GetBool("CONSISTENT_READ"),
			MaxAttempts:    v.GetInt("AWS_MAX_ATTEMPTS"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.TableName) == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}

	switch storage.StorageType(c.Storage.Backend) {
	case storage.StorageTypeDynamoDB:
		if strings.TrimSpace(c.Storage.Region) == "" {
			return fmt.Errorf("AWS_REGION is required for the dynamodb backend")
		}
	case storage.StorageTypeMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}

	if c.Storage.ScanPageSize < 0 {
		return fmt.Errorf("SCAN_PAGE_SIZE cannot be negative")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}

// StoreConfig converts the table settings into the storage adapter's config
func (c *Config) StoreConfig() *storage.StorageConfig {
	return &storage.StorageConfig{
		Type:           c.Storage.Backend,
		TableName:      c.Storage.TableName,
		Region:         c.Storage.Region,
		Endpoint:       c.Storage.Endpoint,
		ScanPageSize:   int32(c.Storage.ScanPageSize),
		ConsistentRead: c.Storage.ConsistentRead,
		MaxAttempts:    c.Storage.MaxAttempts,
	}
}

// NewLogger builds the application logger from the log settings
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(c.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
