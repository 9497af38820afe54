// Package monitor forwards unexpected errors to an error-monitoring service.
package monitor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"go.uber.org/zap"
)

const defaultFlushTimeout = 2 * time.Second

// Reporter reports an error and waits until it has been handed off.
// Report never fails from the caller's point of view.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// Config configures the Sentry reporter
type Config struct {
	DSN          string
	Environment  string
	Revision     string
	ServiceName  string
	FlushTimeout time.Duration
	HTTPClient   *http.Client
}

// SentryReporter reports errors to Sentry
type SentryReporter struct {
	hub          *sentry.Hub
	flushTimeout time.Duration
}

// NewSentryReporter creates a process-wide Sentry reporter
func NewSentryReporter(cfg Config) (*SentryReporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Revision,
		ServerName:       cfg.ServiceName,
		AttachStacktrace: true,
		HTTPClient:       cfg.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry client: %w", err)
	}

	flushTimeout := cfg.FlushTimeout
	if flushTimeout <= 0 {
		flushTimeout = defaultFlushTimeout
	}

	logger.Info("Sentry error reporting initialized",
		zap.String("environment", cfg.Environment),
		zap.String("release", cfg.Revision))

	return &SentryReporter{
		hub:          sentry.NewHub(client, sentry.NewScope()),
		flushTimeout: flushTimeout,
	}, nil
}

// Report captures err and flushes it to Sentry before returning
func (r *SentryReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := r.hub.Clone()
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		hub.Scope().SetTag("request_id", requestID)
	}

	eventID := hub.CaptureException(err)
	if !hub.Flush(r.flushTimeout) {
		metrics.MonitoringReports.WithLabelValues("timeout").Inc()
		logger.Warn("Timed out flushing error report", zap.Error(err))
		return
	}

	metrics.MonitoringReports.WithLabelValues("sent").Inc()
	if eventID != nil {
		logger.Debug("Error reported to Sentry", zap.String("event_id", string(*eventID)))
	}
}

// Close flushes pending events; call once on shutdown
func (r *SentryReporter) Close() {
	r.hub.Flush(r.flushTimeout)
}

// NopReporter only logs; used when no DSN is configured
type NopReporter struct{}

func (NopReporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	metrics.MonitoringReports.WithLabelValues("skipped").Inc()
	logger.LogError(ctx, err, "Error monitoring disabled, error not reported")
}

// New returns a Sentry reporter when a DSN is configured, a NopReporter otherwise
func New(cfg Config) (Reporter, error) {
	if cfg.DSN == "" {
		logger.Warn("Error monitoring disabled: SENTRY_DSN not set")
		return NopReporter{}, nil
	}
	return NewSentryReporter(cfg)
}
