package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/models"
	"github.com/TWEEDOriginal/serverless-intro/internal/services"
	"github.com/TWEEDOriginal/serverless-intro/pkg/lambda"
)

// ProductHandler handles product-related requests
type ProductHandler struct {
	productService services.ProductService
	logger         *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService services.ProductService, logger *logrus.Logger) *ProductHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) log(req *lambda.Request) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"method":     req.Method,
		"path":       req.Path,
	})
}

// HandleGet returns the product named by the productId query parameter
func (h *ProductHandler) HandleGet(ctx context.Context, req *lambda.Request) *lambda.Response {
	productID := req.QueryParams[models.PrimaryKey]

	product, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		return errorToResponse(h.log(req), "get", productID, err)
	}

	return buildResponse(http.StatusOK, product)
}

// HandleList returns every product in the table
func (h *ProductHandler) HandleList(ctx context.Context, req *lambda.Request) *lambda.Response {
	products, err := h.productService.ListProducts(ctx)
	if err != nil {
		return errorToResponse(h.log(req), "list", "", err)
	}

	return buildResponse(http.StatusOK, ProductsResponse{Products: products})
}

// HandleCreate saves the request body as a product
func (h *ProductHandler) HandleCreate(ctx context.Context, req *lambda.Request) *lambda.Response {
	var product models.Product
	if err := decodeBody(req.Body, &product); err != nil {
		return errorToResponse(h.log(req), "save", "", err)
	}

	saved, err := h.productService.CreateProduct(ctx, product)
	if err != nil {
		return errorToResponse(h.log(req), "save", product.ID(), err)
	}

	return buildResponse(http.StatusOK, OperationResponse{
		Operation: OperationSave,
		Message:   MessageSuccess,
		Item:      saved,
	})
}

// HandleUpdate applies the single-attribute update described by the body
func (h *ProductHandler) HandleUpdate(ctx context.Context, req *lambda.Request) *lambda.Response {
	var directive models.UpdateDirective
	if err := decodeBody(req.Body, &directive); err != nil {
		return errorToResponse(h.log(req), "update", "", err)
	}

	updated, err := h.productService.UpdateProduct(ctx, &directive)
	if err != nil {
		return errorToResponse(h.log(req), "update", directive.ProductID, err)
	}

	return buildResponse(http.StatusOK, OperationResponse{
		Operation:         OperationUpdate,
		Message:           MessageSuccess,
		UpdatedAttributes: StoreConfirmation{Attributes: updated},
	})
}

// HandleDelete removes the product named in the body
func (h *ProductHandler) HandleDelete(ctx context.Context, req *lambda.Request) *lambda.Response {
	var directive models.DeleteDirective
	if err := decodeBody(req.Body, &directive); err != nil {
		return errorToResponse(h.log(req), "delete", "", err)
	}

	old, err := h.productService.DeleteProduct(ctx, &directive)
	if err != nil {
		return errorToResponse(h.log(req), "delete", directive.ProductID, err)
	}

	return buildResponse(http.StatusOK, OperationResponse{
		Operation: OperationDelete,
		Message:   MessageSuccess,
		Item:      StoreConfirmation{Attributes: old},
	})
}
