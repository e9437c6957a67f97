package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID in and out
const RequestIDHeader = "X-Request-ID"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// StructuredLogger logs every request with its request context
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"request_id":     c.GetString(RequestIDKey),
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    c.Writer.Status(),
			"latency_ms":     float64(latency.Nanoseconds()) / 1000000,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
			"content_length": c.Request.ContentLength,
			"response_size":  c.Writer.Size(),
		}

		if raw != "" {
			fields["query"] = raw
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.WithFields(fields).Error("Server error")
		case c.Writer.Status() >= 400:
			logger.WithFields(fields).Warn("Client error")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}

// PerformanceMonitor logs requests slower than slowThreshold
func PerformanceMonitor(logger *logrus.Logger, slowThreshold time.Duration) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if slowThreshold == 0 {
		slowThreshold = 1 * time.Second
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		if latency > slowThreshold {
			logger.WithFields(logrus.Fields{
				"performance_alert": true,
				"request_id":        c.GetString(RequestIDKey),
				"method":            c.Request.Method,
				"path":              c.Request.URL.Path,
				"latency_ms":        float64(latency.Nanoseconds()) / 1000000,
				"threshold_ms":      float64(slowThreshold.Nanoseconds()) / 1000000,
				"status_code":       c.Writer.Status(),
			}).Warn("Slow request detected")
		}
	}
}
