package lambda

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAPIGateway(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            "GET",
		Path:                  "/product",
		Headers:               map[string]string{"Accept": "application/json"},
		QueryStringParameters: map[string]string{"productId": "p-1"},
		Body:                  `{"productId":"p-1"}`,
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "gw-123"},
	}

	req, err := FromAPIGateway(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/product", req.Path)
	assert.Equal(t, "p-1", req.QueryParams["productId"])
	assert.Equal(t, []byte(`{"productId":"p-1"}`), req.Body)
	assert.Equal(t, "gw-123", req.RequestID)
}

func TestFromAPIGateway_Base64Body(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:      "POST",
		Path:            "/product",
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"productId":"p-2"}`)),
		IsBase64Encoded: true,
	}

	req, err := FromAPIGateway(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, `{"productId":"p-2"}`, string(req.Body))

	event.Body = "%%%not-base64"
	_, err = FromAPIGateway(context.Background(), event)
	assert.Error(t, err)
}

func TestFromAPIGateway_RequestIDFallbacks(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "aws-456"})
	req, err := FromAPIGateway(ctx, events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/health"})
	require.NoError(t, err)
	assert.Equal(t, "aws-456", req.RequestID)

	req, err = FromAPIGateway(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/health"})
	require.NoError(t, err)
	assert.Len(t, req.RequestID, 36)
}

func TestToAPIGateway(t *testing.T) {
	resp := ToAPIGateway(&Response{StatusCode: 200, Headers: JSONHeaders(), Body: []byte(`{"products":[]}`)})
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, `{"products":[]}`, resp.Body)

	resp = ToAPIGateway(&Response{StatusCode: 404, Body: []byte(`"404 Not Found"`)})
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	resp = ToAPIGateway(nil)
	assert.Equal(t, 500, resp.StatusCode)
}
