package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Report(ctx context.Context, err error) {
	m.Called(ctx, err)
}

func TestRequestIDMiddleware_Generates(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Len(t, seen, 36)
}

func TestRequestIDMiddleware_ReusesIncoming(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(RequestIDHeader, "upstream-id")
	router.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}

func TestReportingRecoveryMiddleware_ReportsPanic(t *testing.T) {
	reporter := new(mockReporter)
	boom := errors.New("boom")

	reporter.On("Report", mock.Anything, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, boom)
	})).Return().Once()

	router := gin.New()
	router.Use(ReportingRecoveryMiddleware(reporter, "Failed to send email"))
	router.POST("/api/enquiry", func(c *gin.Context) { panic(boom) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/enquiry", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	reporter.AssertExpectations(t)
}

func TestReportingRecoveryMiddleware_NonErrorPanic(t *testing.T) {
	reporter := new(mockReporter)
	reporter.On("Report", mock.Anything, mock.MatchedBy(func(err error) bool {
		var panicErr *PanicError
		return errors.As(err, &panicErr) && panicErr.Value == "kaboom" && len(panicErr.Stack) > 0
	})).Return().Once()

	router := gin.New()
	router.Use(ReportingRecoveryMiddleware(reporter, "Failed to send email"))
	router.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	reporter.AssertExpectations(t)
}

func TestReportingRecoveryMiddleware_NoPanic(t *testing.T) {
	reporter := new(mockReporter)
	router := gin.New()
	router.Use(ReportingRecoveryMiddleware(reporter, "Failed to send email"))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "form-action 'self'")
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestBodySizeLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(BodySizeLimitMiddleware(8))
	router.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared length too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too large")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("unknown length too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("much too large")))
		req.ContentLength = -1
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestObservabilityMiddleware_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(ObservabilityMiddleware())
	router.GET("/api/healthcheck", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/healthcheck", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
