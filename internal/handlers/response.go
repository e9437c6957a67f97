package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/TWEEDOriginal/serverless-intro/internal/models"
	"github.com/TWEEDOriginal/serverless-intro/pkg/lambda"
)

// Operation names echoed back by the write endpoints
const (
	OperationSave   = "SAVE"
	OperationUpdate = "UPDATE"
	OperationDelete = "DELETE"

	MessageSuccess = "SUCCESS"
)

// OperationResponse is the body returned by create, update and delete
type OperationResponse struct {
	Operation         string      `json:"Operation"`
	Message           string      `json:"Message"`
	Item              interface{} `json:"Item,omitempty"`
	UpdatedAttributes interface{} `json:"UpdatedAttributes,omitempty"`
}

// StoreConfirmation wraps attributes the table returned from a write, in the
// same envelope DynamoDB uses
type StoreConfirmation struct {
	Attributes models.Product `json:"Attributes"`
}

// ProductsResponse is the body returned by the list endpoint
type ProductsResponse struct {
	Products []models.Product `json:"products"`
}

// buildResponse marshals body as JSON. A nil body produces an empty payload.
func buildResponse(statusCode int, body interface{}) *lambda.Response {
	if body == nil {
		return &lambda.Response{
			StatusCode: statusCode,
			Headers:    lambda.JSONHeaders(),
			Body:       []byte{},
		}
	}

	responseBody, err := json.Marshal(body)
	if err != nil {
		return &lambda.Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    lambda.JSONHeaders(),
			Body:       []byte(`{"error":"Internal server error","message":"Failed to marshal response"}`),
		}
	}

	return &lambda.Response{
		StatusCode: statusCode,
		Headers:    lambda.JSONHeaders(),
		Body:       responseBody,
	}
}
