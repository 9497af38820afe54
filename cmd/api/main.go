package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/magicace/enquiry-api/config"
	"github.com/magicace/enquiry-api/internal/handlers"
	"github.com/magicace/enquiry-api/internal/services"
	"github.com/magicace/enquiry-api/pkg/httpclient"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/mailer"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"github.com/magicace/enquiry-api/pkg/monitor"
	"github.com/magicace/enquiry-api/pkg/profiling"
	"github.com/magicace/enquiry-api/pkg/tracing"
)

// newSender picks the email provider: Resend, or a logging sender in dry-run mode
func newSender(cfg *config.Config, httpClient *http.Client) mailer.Sender {
	if cfg.Email.DryRun {
		return mailer.NewLogSender()
	}
	return mailer.NewResendSender(cfg.Email.ResendAPIKey, httpClient)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting enquiry API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("revision", cfg.Monitoring.Revision),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	// Shared outbound client for the email provider and error monitor
	httpClient := httpclient.NewHTTPClient()

	sender := newSender(cfg, httpClient)

	reporter, err := monitor.New(monitor.Config{
		DSN:         cfg.Monitoring.DSN,
		Environment: cfg.Server.AppEnv,
		Revision:    cfg.Monitoring.Revision,
		ServiceName: cfg.Observability.ServiceName,
		HTTPClient:  httpClient,
	})
	if err != nil {
		logger.Fatal("Failed to initialize error monitoring", zap.Error(err))
	}
	if closer, ok := reporter.(interface{ Close() }); ok {
		defer closer.Close()
	}

	// Initialize services
	enquiryService := services.NewEnquiryService(sender, cfg)

	// Ready only while the listener is up and not draining
	var serving atomic.Bool

	// Initialize handlers
	routes := routeHandlers{
		health:  handlers.NewHealthHandler(serving.Load),
		enquiry: handlers.NewEnquiryHandler(enquiryService, reporter),
		form:    handlers.NewFormHandler(cfg.EnquiryEndpointURL(), httpclient.Wrap(httpClient)),
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := newRouter(cfg, reporter, routes)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		serving.Store(true)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	serving.Store(false)
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
