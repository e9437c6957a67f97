package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

// TableAPI is the subset of the DynamoDB client used by the product store.
// *dynamodb.Client satisfies it, as does MemoryTable.
type TableAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// ProductStore provides the data access operations for the product table
type ProductStore interface {
	// Read returns the product stored under key. A missing product yields an
	// error for which IsNotFound reports true.
	Read(ctx context.Context, key string) (models.Product, error)

	// WriteFull inserts or fully replaces the product at product.ID().
	// Attributes absent from the new record are dropped.
	WriteFull(ctx context.Context, product models.Product) (models.Product, error)

	// UpdatePartial sets a single attribute on an existing product and
	// returns the attributes the store reports as updated
	UpdatePartial(ctx context.Context, key, field string, value interface{}) (models.Product, error)

	// Delete removes the product and returns its prior contents
	Delete(ctx context.Context, key string) (models.Product, error)

	// ScanAll returns every product in the table, following continuation
	// tokens until the store reports no more pages
	ScanAll(ctx context.Context) ([]models.Product, error)

	// Close cleans up any resources used by the storage implementation
	Close() error
}

// StorageConfig represents configuration for the product store
type StorageConfig struct {
	Type           string `json:"type" yaml:"type"`             // "dynamodb" or "memory"
	TableName      string `json:"table_name" yaml:"table_name"` // DynamoDB table name
	Region         string `json:"region" yaml:"region"`
	Endpoint       string `json:"endpoint" yaml:"endpoint"` // Optional override, e.g. DynamoDB Local
	ScanPageSize   int32  `json:"scan_page_size" yaml:"scan_page_size"`
	ConsistentRead bool   `json:"consistent_read" yaml:"consistent_read"`
	MaxAttempts    int    `json:"max_attempts" yaml:"max_attempts"` // SDK retryer attempts
}
