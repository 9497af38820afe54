// Package form implements the enquiry form: a two-field form that posts a
// single JSON submission to the enquiry endpoint and tracks its outcome.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/magicace/enquiry-api/pkg/httpclient"
	"github.com/magicace/enquiry-api/pkg/logger"
	"github.com/magicace/enquiry-api/pkg/metrics"
	"go.uber.org/zap"
)

// State is the lifecycle stage of a Form
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "submitted-success"
	StateFailed     State = "submitted-error"
)

// Submitted reports whether s is a terminal state
func (s State) Submitted() bool {
	return s == StateSucceeded || s == StateFailed
}

const defaultRootError = "An error occurred. Please try again."

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrAlreadySubmitted   = errors.New("form already submitted")
)

// Values is the payload posted to the enquiry endpoint
type Values struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// StatusError is returned by Submit when the endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("enquiry endpoint returned status %d", e.StatusCode)
}

// Form holds the values and submission state of one enquiry form.
// A Form is submitted at most once; a fresh Form is needed to submit again.
type Form struct {
	mu        sync.Mutex
	endpoint  string
	client    httpclient.Client
	state     State
	values    Values
	rootError string
}

// New creates a form in the editing state that submits to endpoint
func New(endpoint string, client httpclient.Client) *Form {
	return &Form{
		endpoint: endpoint,
		client:   client,
		state:    StateEditing,
	}
}

// SetValues replaces the field values. Ignored once the form has left editing.
func (f *Form) SetValues(v Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateEditing {
		f.values = v
	}
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// RootError is the form-level error message, empty unless the submission failed
func (f *Form) RootError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rootError
}

// Submit posts the current values to the endpoint once.
//
// A concurrent call while the post is in flight returns ErrSubmissionInFlight
// and a call after completion returns ErrAlreadySubmitted; neither issues a
// request. On a non-2xx answer or transport failure the form moves to
// StateFailed with a root error and the failure is returned.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.state == StateSubmitting:
		f.mu.Unlock()
		return ErrSubmissionInFlight
	case f.state.Submitted():
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}
	f.state = StateSubmitting
	values := f.values
	f.mu.Unlock()

	start := time.Now()
	err := f.post(ctx, values)
	duration := metrics.MeasureDuration(start)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		logger.LogError(ctx, err, "Enquiry form submission failed",
			zap.String("endpoint", f.endpoint),
			zap.Float64("duration", duration))
		f.state = StateFailed
		f.rootError = defaultRootError
		metrics.FormSubmissions.WithLabelValues(string(StateFailed)).Inc()
		return err
	}

	f.state = StateSucceeded
	metrics.FormSubmissions.WithLabelValues(string(StateSucceeded)).Inc()
	return nil
}

func (f *Form) post(ctx context.Context, values Values) error {
	body, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode enquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post enquiry: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
