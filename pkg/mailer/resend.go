package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

const resendService = "resend"

// ResendSender sends email through the Resend API
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a sender using the given API key and HTTP client
func NewResendSender(apiKey string, httpClient *http.Client) *ResendSender {
	client := resend.NewCustomClient(httpClient, apiKey)

	logger.Info("Resend email client initialized")

	return &ResendSender{client: client}
}

// SetBaseURL points the client at a different API root (used against test servers)
func (s *ResendSender) SetBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid resend base url: %w", err)
	}
	s.client.BaseURL = u
	return nil
}

// Send delivers msg. Transport failures are returned as errors; rejections by
// the API come back as a Result carrying Error.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (*Result, error) {
	start := time.Now()
	operation := "send_email"

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.EmailRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.EmailRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, resendService, operation, "error", duration, zap.Error(err))

		if isTransportError(err) {
			return nil, fmt.Errorf("resend request failed: %w", err)
		}
		return &Result{Error: &Error{Name: "resend_error", Message: strings.TrimPrefix(err.Error(), "[ERROR]: ")}}, nil
	}

	payload, err := json.Marshal(sent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resend response: %w", err)
	}

	metrics.EmailRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.EmailRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, resendService, operation, "success", duration, zap.String("email_id", sent.Id))

	return &Result{Payload: payload}, nil
}

// isTransportError reports whether err happened before the API produced a response
func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
