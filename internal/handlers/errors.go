package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/adapters/storage"
	"github.com/TWEEDOriginal/serverless-intro/internal/models"
	"github.com/TWEEDOriginal/serverless-intro/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorResponse(statusCode int, title, message string) *lambda.Response {
	return buildResponse(statusCode, ErrorResponse{
		Error:   title,
		Message: message,
	})
}

// decodeBody unmarshals a JSON request body into v
func decodeBody(body []byte, v interface{}) error {
	if len(body) == 0 {
		return &models.ValidationError{
			Field:   "body",
			Message: "request body is required",
		}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &models.ValidationError{
			Field:   "body",
			Message: fmt.Sprintf("request body must be a JSON object: %v", err),
		}
	}
	return nil
}

// errorToResponse maps a service failure onto a status code. Backend details
// go to the log only.
func errorToResponse(logger *logrus.Entry, op, productID string, err error) *lambda.Response {
	switch {
	case models.IsValidationError(err):
		logger.WithError(err).Warn("Invalid request")
		return errorResponse(http.StatusBadRequest, "Invalid request", err.Error())

	case storage.IsInvalidInput(err):
		logger.WithError(err).Warn("Invalid product data")
		return errorResponse(http.StatusBadRequest, "Invalid request", "Invalid product data")

	case storage.IsNotFound(err):
		logger.WithField("product_id", productID).Info("Product not found")
		return errorResponse(http.StatusNotFound, "Product not found", fmt.Sprintf("product (%s) not found", productID))

	default:
		logger.WithError(err).WithField("product_id", productID).Error("Storage operation failed")
		return errorResponse(http.StatusInternalServerError, "Internal server error", fmt.Sprintf("Failed to %s product", op))
	}
}
