package storage

import (
	"errors"
	"fmt"
)

// Common storage error types
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidKey         = errors.New("invalid product key")
	ErrInvalidData        = errors.New("invalid data")
	ErrStorageUnavailable = errors.New("storage service unavailable")
)

// StorageError represents a storage operation error with additional context
type StorageError struct {
	Op  string // Operation that failed (e.g., "Read", "ScanAll")
	Key string // Product key involved in the operation
	Err error  // Underlying error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s operation failed for key '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{
		Op:  op,
		Key: key,
		Err: err,
	}
}

// IsNotFound returns true if the error indicates a product was not found
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

// IsInvalidInput returns true if the error was caused by an unusable key or
// record rather than a backend fault
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidKey) || errors.Is(err, ErrInvalidData)
}
