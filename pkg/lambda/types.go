package lambda

import "context"

// ContentTypeJSON is the content type of every response the API produces
const ContentTypeJSON = "application/json"

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// JSONHeaders returns a fresh header map carrying the JSON content type
func JSONHeaders() map[string]string {
	return map[string]string{"Content-Type": ContentTypeJSON}
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) *Response
