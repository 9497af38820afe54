package errors

import (
	"errors"
	"fmt"
)

// Application errors used to classify enquiry outcomes

var (
	// ErrInvalidInput indicates the enquiry payload failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrSendFailed indicates the email provider declined or failed to accept the message
	ErrSendFailed = errors.New("send failed")

	// ErrInternal indicates an unexpected failure
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// SendFailedError creates a send failure carrying the provider's reason
func SendFailedError(provider, reason string) error {
	if reason == "" {
		return fmt.Errorf("%s: %w", provider, ErrSendFailed)
	}
	return fmt.Errorf("%s: %s: %w", provider, reason, ErrSendFailed)
}

// InternalError creates an internal error with context
func InternalError(msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", msg, ErrInternal)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrInternal, cause)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
