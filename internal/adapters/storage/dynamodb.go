package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

// Expression placeholders used by UpdatePartial. Attribute names are always
// bound through ExpressionAttributeNames so reserved words such as "name" or
// "status" can be updated.
const (
	fieldNamePlaceholder  = "#field"
	fieldValuePlaceholder = ":value"
	keyNamePlaceholder    = "#pk"

	updateExpression    = "SET " + fieldNamePlaceholder + " = " + fieldValuePlaceholder
	conditionExpression = "attribute_exists(" + keyNamePlaceholder + ")"
)

// DynamoStore implements ProductStore against a single DynamoDB table
type DynamoStore struct {
	api            TableAPI
	tableName      string
	pageSize       int32
	consistentRead bool
	logger         *logrus.Logger
}

// NewDynamoStore creates a new DynamoStore bound to cfg.TableName
func NewDynamoStore(api TableAPI, cfg *StorageConfig, logger *logrus.Logger) (*DynamoStore, error) {
	if api == nil {
		return nil, fmt.Errorf("dynamodb client is required")
	}
	if cfg == nil || strings.TrimSpace(cfg.TableName) == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if cfg.ScanPageSize < 0 {
		return nil, fmt.Errorf("scan page size cannot be negative: %d", cfg.ScanPageSize)
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &DynamoStore{
		api:            api,
		tableName:      cfg.TableName,
		pageSize:       cfg.ScanPageSize,
		consistentRead: cfg.ConsistentRead,
		logger:         logger,
	}, nil
}

// TableName returns the name of the backing table
func (s *DynamoStore) TableName() string {
	return s.tableName
}

// Read implements ProductStore.Read
func (s *DynamoStore) Read(ctx context.Context, key string) (models.Product, error) {
	if strings.TrimSpace(key) == "" {
		return nil, NewStorageError("Read", key, ErrInvalidKey)
	}

	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            primaryKey(key),
		ConsistentRead: aws.Bool(s.consistentRead),
	})
	if err != nil {
		return nil, NewStorageError("Read", key, err)
	}
	if len(out.Item) == 0 {
		return nil, NewStorageError("Read", key, ErrProductNotFound)
	}

	product, err := unmarshalProduct(out.Item)
	if err != nil {
		return nil, NewStorageError("Read", key, err)
	}
	return product, nil
}

// WriteFull implements ProductStore.WriteFull
func (s *DynamoStore) WriteFull(ctx context.Context, product models.Product) (models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, NewStorageError("WriteFull", product.ID(), fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	item, err := attributevalue.MarshalMap(map[string]interface{}(product))
	if err != nil {
		return nil, NewStorageError("WriteFull", product.ID(), fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return nil, NewStorageError("WriteFull", product.ID(), err)
	}

	s.logger.WithFields(logrus.Fields{
		"table":      s.tableName,
		"product_id": product.ID(),
		"attributes": len(item),
	}).Debug("Product written")

	return product.Clone(), nil
}

// UpdatePartial implements ProductStore.UpdatePartial
func (s *DynamoStore) UpdatePartial(ctx context.Context, key, field string, value interface{}) (models.Product, error) {
	if strings.TrimSpace(key) == "" {
		return nil, NewStorageError("UpdatePartial", key, ErrInvalidKey)
	}
	if strings.TrimSpace(field) == "" || field == models.PrimaryKey {
		return nil, NewStorageError("UpdatePartial", key, fmt.Errorf("%w: cannot update attribute %q", ErrInvalidData, field))
	}

	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, NewStorageError("UpdatePartial", key, fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	out, err := s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 primaryKey(key),
		UpdateExpression:    aws.String(updateExpression),
		ConditionExpression: aws.String(conditionExpression),
		ExpressionAttributeNames: map[string]string{
			fieldNamePlaceholder: field,
			keyNamePlaceholder:   models.PrimaryKey,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			fieldValuePlaceholder: av,
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, NewStorageError("UpdatePartial", key, ErrProductNotFound)
		}
		return nil, NewStorageError("UpdatePartial", key, err)
	}

	updated, err := unmarshalProduct(out.Attributes)
	if err != nil {
		return nil, NewStorageError("UpdatePartial", key, err)
	}
	return updated, nil
}

// Delete implements ProductStore.Delete
func (s *DynamoStore) Delete(ctx context.Context, key string) (models.Product, error) {
	if strings.TrimSpace(key) == "" {
		return nil, NewStorageError("Delete", key, ErrInvalidKey)
	}

	out, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.tableName),
		Key:          primaryKey(key),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, NewStorageError("Delete", key, err)
	}
	if len(out.Attributes) == 0 {
		return nil, NewStorageError("Delete", key, ErrProductNotFound)
	}

	old, err := unmarshalProduct(out.Attributes)
	if err != nil {
		return nil, NewStorageError("Delete", key, err)
	}
	return old, nil
}

// ScanAll implements ProductStore.ScanAll. Pages are fetched strictly in
// sequence: each request's ExclusiveStartKey is the previous response's
// LastEvaluatedKey, untouched.
func (s *DynamoStore) ScanAll(ctx context.Context) ([]models.Product, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}
	if s.pageSize > 0 {
		input.Limit = aws.Int32(s.pageSize)
	}

	products := make([]models.Product, 0)
	pages := 0

	paginator := dynamodb.NewScanPaginator(s.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, NewStorageError("ScanAll", "", fmt.Errorf("page %d: %w", pages+1, err))
		}
		pages++

		for _, item := range page.Items {
			product, err := unmarshalProduct(item)
			if err != nil {
				return nil, NewStorageError("ScanAll", "", err)
			}
			products = append(products, product)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"table": s.tableName,
		"pages": pages,
		"count": len(products),
	}).Debug("Table scan completed")

	return products, nil
}

// Close implements ProductStore.Close
func (s *DynamoStore) Close() error {
	return nil
}

func primaryKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		models.PrimaryKey: &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalProduct(item map[string]types.AttributeValue) (models.Product, error) {
	product := models.Product{}
	if err := attributevalue.UnmarshalMap(item, &product); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return product, nil
}
