package services

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"

	"github.com/magicace/enquiry-api/config"
	"github.com/magicace/enquiry-api/internal/models"
	apperrors "github.com/magicace/enquiry-api/pkg/errors"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/mailer"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"github.com/magicace/enquiry-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Enquirer-supplied values are escaped by html/template
var enquiryEmailTemplate = template.Must(template.New("enquiry").Parse(
	`<p>You have received a new enquiry from <strong>{{.Email}}</strong>.</p><p>Message: {{.Message}}</p>`,
))

// EnquiryService turns a validated enquiry into a notification email and sends it
type EnquiryService struct {
	sender mailer.Sender
	config *config.Config
}

// NewEnquiryService creates a new enquiry service instance
func NewEnquiryService(sender mailer.Sender, cfg *config.Config) *EnquiryService {
	return &EnquiryService{
		sender: sender,
		config: cfg,
	}
}

// BuildEnquiryEmail renders the notification for req. req must already be validated.
func (s *EnquiryService) BuildEnquiryEmail(req *models.EnquiryRequest) (*mailer.Message, error) {
	var body bytes.Buffer
	if err := enquiryEmailTemplate.Execute(&body, req); err != nil {
		return nil, apperrors.InternalError("render enquiry email", err)
	}

	return &mailer.Message{
		From:    s.config.SenderAddress(),
		ReplyTo: req.Email,
		To:      s.config.Enquiry.Recipient,
		Subject: s.config.Enquiry.Subject,
		HTML:    body.String(),
	}, nil
}

// SubmitEnquiry sends the enquiry email and returns the provider's payload.
//
// A provider rejection returns an error wrapping apperrors.ErrSendFailed. Any
// other error is the sender's own error, unwrapped, and means the send failed
// unexpectedly.
func (s *EnquiryService) SubmitEnquiry(ctx context.Context, req *models.EnquiryRequest) (json.RawMessage, error) {
	ctx, span := tracing.StartSpan(ctx, "enquiry.send_email",
		attribute.String("email.recipient", s.config.Enquiry.Recipient))
	defer span.End()

	msg, err := s.BuildEnquiryEmail(req)
	if err != nil {
		metrics.EnquirySubmissions.WithLabelValues("error").Inc()
		tracing.RecordError(span, err)
		return nil, err
	}

	result, err := s.sender.Send(ctx, msg)
	if err != nil {
		metrics.EnquirySubmissions.WithLabelValues("error").Inc()
		tracing.RecordError(span, err)
		return nil, err
	}

	if result.Failed() {
		reason := ""
		if result != nil && result.Error != nil {
			reason = result.Error.Error()
		}
		metrics.EnquirySubmissions.WithLabelValues("send_failed").Inc()
		logger.Warn("Email provider did not accept enquiry email",
			zap.String("reason", reason),
			zap.String("request_id", logger.RequestIDFromContext(ctx)))

		sendErr := apperrors.SendFailedError("email provider", reason)
		tracing.RecordError(span, sendErr)
		return nil, sendErr
	}

	metrics.EnquirySubmissions.WithLabelValues("success").Inc()
	return result.Payload, nil
}
