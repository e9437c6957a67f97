package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeDynamoDB StorageType = "dynamodb"
	StorageTypeMemory   StorageType = "memory"
)

// NewProductStore creates a ProductStore based on the provided configuration
func NewProductStore(ctx context.Context, config *StorageConfig, logger *logrus.Logger) (ProductStore, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	storageType := StorageType(strings.ToLower(config.Type))
	if storageType == "" {
		storageType = StorageTypeDynamoDB
	}

	var api TableAPI
	switch storageType {
	case StorageTypeDynamoDB:
		client, err := NewDynamoDBClient(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s storage: %w", storageType, err)
		}
		api = client
	case StorageTypeMemory:
		api = NewMemoryTable(config.TableName, config.ScanPageSize)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	store, err := NewDynamoStore(api, config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", storageType, err)
	}

	logger.WithFields(logrus.Fields{
		"storage_type": storageType,
		"table":        config.TableName,
		"region":       config.Region,
		"endpoint":     config.Endpoint,
	}).Info("Product store initialized")

	return store, nil
}

// NewDynamoDBClient builds a DynamoDB client from the default AWS credential
// chain, pinned to the configured region
func NewDynamoDBClient(ctx context.Context, config *StorageConfig) (*dynamodb.Client, error) {
	if config.Region == "" {
		return nil, fmt.Errorf("region is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.MaxAttempts > 0 {
		opts = append(opts, awsconfig.WithRetryMaxAttempts(config.MaxAttempts))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
	}), nil
}
