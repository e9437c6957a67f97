package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENVIRONMENT", "PORT", "LOG_LEVEL", "LOG_FORMAT", "STORAGE_BACKEND",
	"TABLE_NAME", "AWS_REGION", "DYNAMODB_ENDPOINT", "SCAN_PAGE_SIZE",
	"CONSISTENT_READ", "AWS_MAX_ATTEMPTS", "AWS_LAMBDA_FUNCTION_NAME",
	"ALLOW_MEMORY_BACKEND",
}

// clearEnv blanks every key Load reads; viper treats empty variables as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "dynamodb", cfg.Storage.Backend)
	assert.Equal(t, "product-inventory", cfg.Storage.TableName)
	assert.Equal(t, "eu-central-1", cfg.Storage.Region)
	assert.Equal(t, "", cfg.Storage.Endpoint)
	assert.Equal(t, 0, cfg.Storage.ScanPageSize)
	assert.False(t, cfg.Storage.ConsistentRead)
	assert.Equal(t, 3, cfg.Storage.MaxAttempts)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "Memory")
	t.Setenv("TABLE_NAME", "inventory-test")
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("SCAN_PAGE_SIZE", "25")
	t.Setenv("CONSISTENT_READ", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "inventory-test", cfg.Storage.TableName)
	assert.Equal(t, "us-west-2", cfg.Storage.Region)
	assert.Equal(t, "http://localhost:8000", cfg.Storage.Endpoint)
	assert.Equal(t, 25, cfg.Storage.ScanPageSize)
	assert.True(t, cfg.Storage.ConsistentRead)

	store := cfg.StoreConfig()
	assert.Equal(t, "memory", store.Type)
	assert.Equal(t, int32(25), store.ScanPageSize)
	assert.Equal(t, "http://localhost:8000", store.Endpoint)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown backend", key: "STORAGE_BACKEND", value: "sqlite"},
		{name: "negative page size", key: "SCAN_PAGE_SIZE", value: "-5"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateRequiresTableAndRegion(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "info"}, Storage: StorageConfig{Backend: "dynamodb", Region: "eu-central-1"}}
	assert.Error(t, cfg.Validate())

	cfg.Storage.TableName = "product-inventory"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Region = ""
	assert.Error(t, cfg.Validate())

	cfg.Storage.Backend = "memory"
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "warn", Format: "json"}}
	logger := cfg.NewLogger()
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg = &Config{Log: LogConfig{Level: "nonsense"}}
	logger = cfg.NewLogger()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestAdaptConfigForServerless(t *testing.T) {
	clearEnv(t)

	local := &Config{Log: LogConfig{Format: "text"}, Storage: StorageConfig{Backend: "memory"}}
	got := AdaptConfigForServerless(local, &ServerlessConfig{IsLambda: false})
	assert.Equal(t, "text", got.Log.Format)
	assert.Equal(t, "memory", got.Storage.Backend)

	inLambda := &Config{Log: LogConfig{Format: "text"}, Storage: StorageConfig{Backend: "memory"}}
	got = AdaptConfigForServerless(inLambda, &ServerlessConfig{IsLambda: true, Region: "eu-west-1"})
	assert.Equal(t, "json", got.Log.Format)
	assert.Equal(t, "dynamodb", got.Storage.Backend)
	assert.Equal(t, "eu-west-1", got.Storage.Region)

	t.Setenv("ALLOW_MEMORY_BACKEND", "true")
	allowed := &Config{Storage: StorageConfig{Backend: "memory", Region: "eu-central-1"}}
	got = AdaptConfigForServerless(allowed, &ServerlessConfig{IsLambda: true, Region: "eu-west-1"})
	assert.Equal(t, "memory", got.Storage.Backend)
	assert.Equal(t, "eu-central-1", got.Storage.Region)
}

func TestDetectServerless(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, "server", DetectServerless().DeploymentMode())

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "product-inventory-api")
	sc := DetectServerless()
	assert.True(t, sc.IsLambda)
	assert.Equal(t, "product-inventory-api", sc.FunctionName)
	assert.Equal(t, "serverless", sc.DeploymentMode())
}
