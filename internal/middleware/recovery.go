package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"github.com/magicace/enquiry-api/pkg/monitor"
	"go.uber.org/zap"
)

// PanicError carries a recovered panic value and the stack it was raised on
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ReportingRecoveryMiddleware recovers from panics in later handlers, reports
// them to the error monitor and answers 500 with {"error": message}.
// The report completes before the response is written.
func ReportingRecoveryMiddleware(reporter monitor.Reporter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			err := &PanicError{Value: recovered, Stack: debug.Stack()}
			ctx := c.Request.Context()

			logger.Error("Recovered from panic",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", logger.RequestIDFromContext(ctx)),
				zap.Any("panic", recovered),
				zap.ByteString("stack", err.Stack))
			metrics.EnquirySubmissions.WithLabelValues("error").Inc()

			reporter.Report(ctx, err)

			_ = c.Error(err) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
		}()

		c.Next()
	}
}
