package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/magicace/enquiry-api/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "RequestID"
	maxRequestIDLen = 128
)

// RequestIDMiddleware tags every request with an ID, reusing a caller-supplied
// X-Request-ID when present, and stores it on the request context for logging.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
