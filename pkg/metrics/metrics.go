package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Buckets cover fast validation rejections up to slow email provider round-trips
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Email Client Metrics (Resend)
	EmailRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_client_operation_duration_seconds",
			Help:    "Email provider operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	EmailRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_client_operation_total",
			Help: "Total number of email provider operations",
		},
		[]string{"operation", "status"},
	)

	// Error Monitoring Metrics (Sentry)
	MonitoringReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitoring_reports_total",
			Help: "Total number of errors forwarded to error monitoring",
		},
		[]string{"status"},
	)

	// Business Metrics
	EnquirySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_submissions_total",
			Help: "Total number of enquiry submissions by outcome",
		},
		[]string{"status"}, // success, validation_failed, send_failed, error
	)

	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_form_submissions_total",
			Help: "Total number of server-rendered enquiry form submissions by final state",
		},
		[]string{"state"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
// until stop is closed
func RecordInfrastructureMetrics(stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
