package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/magicace/enquiry-api/config"
	"github.com/magicace/enquiry-api/internal/handlers"
	"github.com/magicace/enquiry-api/internal/middleware"
	"github.com/magicace/enquiry-api/pkg/monitor"
)

// routeHandlers groups the handlers mounted on the router
type routeHandlers struct {
	health  *handlers.HealthHandler
	enquiry *handlers.EnquiryHandler
	form    *handlers.FormHandler
}

// newRouter builds the gin engine with global middleware and all routes
func newRouter(cfg *config.Config, reporter monitor.Reporter, h routeHandlers) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/healthcheck", h.health.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.POST("/enquiry",
		middleware.ReportingRecoveryMiddleware(reporter, "Failed to send email"),
		middleware.BodySizeLimitMiddleware(cfg.Enquiry.MaxBodyBytes),
		h.enquiry.SubmitEnquiry,
	)

	// Server-rendered enquiry page
	router.GET("/enquiry", h.form.ShowForm)
	router.POST("/enquiry", middleware.BodySizeLimitMiddleware(cfg.Enquiry.MaxBodyBytes), h.form.SubmitForm)

	return router
}
