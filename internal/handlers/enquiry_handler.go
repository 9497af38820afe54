package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magicace/enquiry-api/internal/models"
	"github.com/magicace/enquiry-api/internal/services"
	apperrors "github.com/magicace/enquiry-api/pkg/errors"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"github.com/magicace/enquiry-api/pkg/monitor"
	"go.uber.org/zap"
)

type EnquiryHandler struct {
	service  services.EnquiryServiceInterface
	reporter monitor.Reporter
}

func NewEnquiryHandler(service services.EnquiryServiceInterface, reporter monitor.Reporter) *EnquiryHandler {
	return &EnquiryHandler{
		service:  service,
		reporter: reporter,
	}
}

// SubmitEnquiry handles POST /api/enquiry.
// On success the provider's payload is written back unchanged.
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if issues := ParseValidationErrors(err); len(issues) > 0 {
			metrics.EnquirySubmissions.WithLabelValues("validation_failed").Inc()
			logger.Warn("Enquiry validation failed",
				zap.Any("issues", issues),
				zap.String("request_id", logger.RequestIDFromContext(ctx)))
			respondValidationError(c, http.StatusBadRequest, issues)
			return
		}

		// Body could not be read as JSON at all
		metrics.EnquirySubmissions.WithLabelValues("error").Inc()
		h.reportAndFail(c, err)
		return
	}

	payload, err := h.service.SubmitEnquiry(ctx, &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSendFailed) {
			respondError(c, http.StatusInternalServerError, sendFailedMessage, err)
			return
		}
		h.reportAndFail(c, err)
		return
	}

	logger.Info("Enquiry email sent",
		zap.String("request_id", logger.RequestIDFromContext(ctx)))
	c.Data(http.StatusOK, "application/json", payload)
}

// reportAndFail waits for the monitor to accept err before answering 500
func (h *EnquiryHandler) reportAndFail(c *gin.Context, err error) {
	logger.LogError(c.Request.Context(), err, "Unexpected error handling enquiry")
	h.reporter.Report(c.Request.Context(), err)
	respondError(c, http.StatusInternalServerError, sendFailedMessage, err)
}
