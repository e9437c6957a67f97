package models

import (
	"fmt"
	"strings"
)

// PrimaryKey is the attribute that uniquely identifies a product in the table
const PrimaryKey = "productId"

// Product represents an inventory record. Apart from the primary key the
// record shape is open: any attribute the client submits is stored as-is.
type Product map[string]interface{}

// ID returns the product's primary key, or an empty string if it is missing
// or not a string
func (p Product) ID() string {
	id, _ := p[PrimaryKey].(string)
	return id
}

// Validate checks that the product carries a usable primary key
func (p Product) Validate() error {
	if p == nil {
		return &ValidationError{
			Field:   PrimaryKey,
			Message: "product body is required",
		}
	}

	raw, ok := p[PrimaryKey]
	if !ok {
		return &ValidationError{
			Field:   PrimaryKey,
			Message: PrimaryKey + " is required",
		}
	}

	id, ok := raw.(string)
	if !ok {
		return &ValidationError{
			Field:   PrimaryKey,
			Message: fmt.Sprintf("%s must be a string, got %T", PrimaryKey, raw),
			Value:   raw,
		}
	}

	return ValidateRequired(id, PrimaryKey)
}

// Clone returns a shallow copy of the product
func (p Product) Clone() Product {
	if p == nil {
		return nil
	}
	out := make(Product, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// UpdateDirective is the body of a PATCH/PUT request. Exactly one attribute
// is modified per call.
type UpdateDirective struct {
	ProductID   string      `json:"productId" validate:"required"`
	UpdateKey   string      `json:"updateKey" validate:"required,ne=productId"`
	UpdateValue interface{} `json:"updateValue"`
}

// Validate validates the update directive
func (d *UpdateDirective) Validate() error {
	if d == nil {
		return &ValidationError{
			Field:   PrimaryKey,
			Message: "update body is required",
		}
	}

	if err := ValidateStruct(d); err != nil {
		return err
	}

	if strings.TrimSpace(d.ProductID) == "" {
		return ValidateRequired(d.ProductID, PrimaryKey)
	}

	if strings.TrimSpace(d.UpdateKey) == "" {
		return ValidateRequired(d.UpdateKey, "updateKey")
	}

	if d.UpdateValue == nil {
		return &ValidationError{
			Field:   "updateValue",
			Message: "updateValue is required",
		}
	}

	return nil
}

// DeleteDirective is the body of a DELETE request
type DeleteDirective struct {
	ProductID string `json:"productId" validate:"required"`
}

// Validate validates the delete directive
func (d *DeleteDirective) Validate() error {
	if d == nil {
		return &ValidationError{
			Field:   PrimaryKey,
			Message: "delete body is required",
		}
	}

	if err := ValidateStruct(d); err != nil {
		return err
	}

	return ValidateRequired(d.ProductID, PrimaryKey)
}
