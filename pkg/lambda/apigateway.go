package lambda

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

// FromAPIGateway converts an API Gateway proxy event into a generic request.
// The request id is taken from the gateway, then the Lambda invocation, and
// generated as a last resort.
func FromAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		body = decoded
	}

	requestID := event.RequestContext.RequestID
	if requestID == "" {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			requestID = lc.AwsRequestID
		}
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
		RequestID:   requestID,
	}, nil
}

// ToAPIGateway converts a generic response into an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	if resp == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    JSONHeaders(),
			Body:       `{"error":"Internal server error","message":"No response produced"}`,
		}
	}

	headers := resp.Headers
	if headers == nil {
		headers = JSONHeaders()
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(resp.Body),
	}
}
