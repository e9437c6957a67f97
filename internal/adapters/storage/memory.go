package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/TWEEDOriginal/serverless-intro/internal/models"
)

// DefaultMemoryPageLimit caps scan pages when the request sets no Limit,
// standing in for DynamoDB's 1 MB page size
const DefaultMemoryPageLimit = 100

// MemoryTable is an in-memory implementation of TableAPI for tests and local
// development. It understands the request shapes DynamoStore issues and pages
// scans the way DynamoDB does: a full page always carries a LastEvaluatedKey,
// even when it happens to be the last one.
type MemoryTable struct {
	mu        sync.RWMutex
	tableName string
	pageLimit int32
	items     map[string]map[string]types.AttributeValue
	failures  map[string]error
	scanKeys  []map[string]types.AttributeValue
}

// NewMemoryTable creates an empty table. pageLimit <= 0 uses
// DefaultMemoryPageLimit.
func NewMemoryTable(tableName string, pageLimit int32) *MemoryTable {
	if pageLimit <= 0 {
		pageLimit = DefaultMemoryPageLimit
	}
	return &MemoryTable{
		tableName: tableName,
		pageLimit: pageLimit,
		items:     make(map[string]map[string]types.AttributeValue),
		failures:  make(map[string]error),
	}
}

// FailOn makes every subsequent call to op ("GetItem", "Scan", ...) return
// err. A nil err clears the failure.
func (m *MemoryTable) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// ScanStartKeys returns the ExclusiveStartKey of every Scan request received,
// in order. The first entry of a fresh scan is nil.
func (m *MemoryTable) ScanStartKeys() []map[string]types.AttributeValue {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]map[string]types.AttributeValue, len(m.scanKeys))
	copy(out, m.scanKeys)
	return out
}

// Len returns the number of stored items
func (m *MemoryTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// GetItem implements TableAPI.GetItem
func (m *MemoryTable) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.check("GetItem", params.TableName); err != nil {
		return nil, err
	}
	id, err := keyValue(params.Key)
	if err != nil {
		return nil, err
	}

	return &dynamodb.GetItemOutput{Item: copyItem(m.items[id])}, nil
}

// PutItem implements TableAPI.PutItem
func (m *MemoryTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("PutItem", params.TableName); err != nil {
		return nil, err
	}
	id, err := keyValue(params.Item)
	if err != nil {
		return nil, err
	}

	old := m.items[id]
	m.items[id] = copyItem(params.Item)

	out := &dynamodb.PutItemOutput{}
	if params.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = copyItem(old)
	}
	return out, nil
}

// UpdateItem implements TableAPI.UpdateItem for single-attribute SET
// expressions with an optional attribute_exists condition
func (m *MemoryTable) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("UpdateItem", params.TableName); err != nil {
		return nil, err
	}
	id, err := keyValue(params.Key)
	if err != nil {
		return nil, err
	}

	field, value, err := parseSetExpression(params)
	if err != nil {
		return nil, err
	}

	item, exists := m.items[id]
	if params.ConditionExpression != nil && !exists {
		return nil, &types.ConditionalCheckFailedException{
			Message: aws.String("The conditional request failed"),
		}
	}
	if !exists {
		item = copyItem(params.Key)
	}
	item[field] = value
	m.items[id] = item

	out := &dynamodb.UpdateItemOutput{}
	switch params.ReturnValues {
	case types.ReturnValueUpdatedNew:
		out.Attributes = map[string]types.AttributeValue{field: value}
	case types.ReturnValueAllNew:
		out.Attributes = copyItem(item)
	}
	return out, nil
}

// DeleteItem implements TableAPI.DeleteItem
func (m *MemoryTable) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("DeleteItem", params.TableName); err != nil {
		return nil, err
	}
	id, err := keyValue(params.Key)
	if err != nil {
		return nil, err
	}

	old, exists := m.items[id]
	delete(m.items, id)

	out := &dynamodb.DeleteItemOutput{}
	if exists && params.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = old
	}
	return out, nil
}

// Scan implements TableAPI.Scan. Items are returned in key order.
func (m *MemoryTable) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanKeys = append(m.scanKeys, copyItem(params.ExclusiveStartKey))

	if err := m.check("Scan", params.TableName); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if params.ExclusiveStartKey != nil {
		after, err := keyValue(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		start = sort.Search(len(keys), func(i int) bool { return keys[i] > after })
	}

	limit := m.pageLimit
	if params.Limit != nil && *params.Limit > 0 && *params.Limit < limit {
		limit = *params.Limit
	}

	end := start + int(limit)
	if end > len(keys) {
		end = len(keys)
	}

	out := &dynamodb.ScanOutput{
		Items: make([]map[string]types.AttributeValue, 0, end-start),
	}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, copyItem(m.items[k]))
	}
	out.Count = int32(len(out.Items))
	out.ScannedCount = out.Count

	if len(out.Items) == int(limit) {
		out.LastEvaluatedKey = primaryKey(keys[end-1])
	}
	return out, nil
}

func (m *MemoryTable) check(op string, tableName *string) error {
	if err, ok := m.failures[op]; ok {
		return err
	}
	if aws.ToString(tableName) != m.tableName {
		return &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Requested resource not found: Table: %s not found", aws.ToString(tableName))),
		}
	}
	return nil
}

func keyValue(item map[string]types.AttributeValue) (string, error) {
	s, ok := item[models.PrimaryKey].(*types.AttributeValueMemberS)
	if !ok || s.Value == "" {
		return "", fmt.Errorf("%w: item must carry a non-empty string %s", ErrInvalidKey, models.PrimaryKey)
	}
	return s.Value, nil
}

// parseSetExpression resolves "SET <name> = <value>" against the request's
// attribute name and value maps
func parseSetExpression(params *dynamodb.UpdateItemInput) (string, types.AttributeValue, error) {
	expr := strings.TrimSpace(aws.ToString(params.UpdateExpression))
	if !strings.HasPrefix(strings.ToUpper(expr), "SET ") {
		return "", nil, fmt.Errorf("unsupported update expression %q", expr)
	}

	parts := strings.SplitN(strings.TrimSpace(expr[4:]), "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("unsupported update expression %q", expr)
	}
	name := strings.TrimSpace(parts[0])
	placeholder := strings.TrimSpace(parts[1])

	if strings.HasPrefix(name, "#") {
		resolved, ok := params.ExpressionAttributeNames[name]
		if !ok {
			return "", nil, fmt.Errorf("undefined attribute name %s", name)
		}
		name = resolved
	}
	if name == models.PrimaryKey {
		return "", nil, fmt.Errorf("cannot update key attribute %s", name)
	}

	value, ok := params.ExpressionAttributeValues[placeholder]
	if !ok {
		return "", nil, fmt.Errorf("undefined attribute value %s", placeholder)
	}
	return name, value, nil
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
