package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/services"
	"github.com/TWEEDOriginal/serverless-intro/pkg/lambda"
)

// Route paths. Matching is exact.
const (
	HealthPath   = "/health"
	ProductPath  = "/product"
	ProductsPath = "/products"
)

// NotFoundMessage is the body returned for any unmatched method/path pair
const NotFoundMessage = "404 Not Found"

// Router dispatches requests on (method, path) to the product handlers
type Router struct {
	products *ProductHandler
	logger   *logrus.Logger
}

// NewRouter creates a router backed by the given product service
func NewRouter(productService services.ProductService, logger *logrus.Logger) (*Router, error) {
	if productService == nil {
		return nil, fmt.Errorf("product service cannot be nil")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Router{
		products: NewProductHandler(productService, logger),
		logger:   logger,
	}, nil
}

// Route handles one request. It never returns nil and never panics.
func (r *Router) Route(ctx context.Context, req *lambda.Request) (resp *lambda.Response) {
	start := time.Now()
	if req == nil {
		req = &lambda.Request{}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"panic":      rec,
			}).Error("Panic while handling request")
			resp = errorResponse(http.StatusInternalServerError, "Internal server error", "Unexpected failure")
		}
		r.logRequest(req, resp, time.Since(start))
	}()

	return r.dispatch(ctx, req)
}

func (r *Router) dispatch(ctx context.Context, req *lambda.Request) *lambda.Response {
	switch req.Path {
	case HealthPath:
		if req.Method == http.MethodGet {
			return buildResponse(http.StatusOK, nil)
		}

	case ProductPath:
		switch req.Method {
		case http.MethodGet:
			return r.products.HandleGet(ctx, req)
		case http.MethodPost:
			return r.products.HandleCreate(ctx, req)
		case http.MethodPatch, http.MethodPut:
			return r.products.HandleUpdate(ctx, req)
		case http.MethodDelete:
			return r.products.HandleDelete(ctx, req)
		}

	case ProductsPath:
		if req.Method == http.MethodGet {
			return r.products.HandleList(ctx, req)
		}
	}

	return buildResponse(http.StatusNotFound, NotFoundMessage)
}

func (r *Router) logRequest(req *lambda.Request, resp *lambda.Response, latency time.Duration) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	entry := r.logger.WithFields(logrus.Fields{
		"request_id":  req.RequestID,
		"method":      req.Method,
		"path":        req.Path,
		"status_code": status,
		"latency_ms":  latency.Milliseconds(),
	})

	switch {
	case status >= 500:
		entry.Error("Request completed with server error")
	case status >= 400:
		entry.Warn("Request completed with client error")
	default:
		entry.Info("Request completed")
	}
}

// SetupRoutes mounts the router on a gin engine so the same routing table
// serves local development traffic.
func SetupRoutes(engine *gin.Engine, router *Router) {
	engine.Any("/*path", func(c *gin.Context) {
		req, err := requestFromGin(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request",
				Message: "Failed to read request body",
			})
			return
		}

		resp := router.Route(c.Request.Context(), req)
		for key, value := range resp.Headers {
			c.Header(key, value)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	})
}

func requestFromGin(c *gin.Context) (*lambda.Request, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
	}

	headers := make(map[string]string, len(c.Request.Header))
	for key := range c.Request.Header {
		headers[key] = c.Request.Header.Get(key)
	}

	query := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	return &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     headers,
		QueryParams: query,
		Body:        body,
		RequestID:   c.GetString("request_id"),
	}, nil
}
