package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWEEDOriginal/serverless-intro/internal/config"
	"github.com/TWEEDOriginal/serverless-intro/pkg/server"
)

func newTestHandler(t *testing.T) apiGatewayHandler {
	t.Helper()

	container, err := server.NewContainer(context.Background(), &config.Config{
		Environment: "test",
		Log:         config.LogConfig{Level: "panic"},
		Storage: config.StorageConfig{
			Backend:   "memory",
			TableName: "product-inventory",
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return newHandler(container)
}

func TestHandler_ProductLifecycle(t *testing.T) {
	handler := newTestHandler(t)
	ctx := context.Background()

	resp, err := handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/product",
		Body:       `{"productId":"p-1","name":"Brioche","price":4.5}`,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	resp, err = handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/product",
		QueryStringParameters: map[string]string{"productId": "p-1"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"productId":"p-1","name":"Brioche","price":4.5}`, resp.Body)

	resp, err = handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/products",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[{"productId":"p-1","name":"Brioche","price":4.5}]}`, resp.Body)
}

func TestHandler_Base64Body(t *testing.T) {
	handler := newTestHandler(t)

	resp, err := handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/product",
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"productId":"p-2"}`)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	resp, err = handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/product",
		Body:            "%%% not base64",
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_UnknownRoute(t *testing.T) {
	handler := newTestHandler(t)

	resp, err := handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/unknown",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, `"404 Not Found"`, resp.Body)
}
