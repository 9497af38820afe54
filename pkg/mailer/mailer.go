// Package mailer delivers transactional email through a provider-agnostic Sender.
package mailer

import (
	"context"
	"encoding/json"
)

// Message is a single HTML email handed to a provider
type Message struct {
	From    string `json:"from"`
	ReplyTo string `json:"replyTo,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Error is a failure the provider reported in its response
type Error struct {
	Name       string `json:"name,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

// Result is the provider's answer to a send: either a success payload or an Error
type Result struct {
	Payload json.RawMessage
	Error   *Error
}

// Failed reports whether r is missing or carries a provider error
func (r *Result) Failed() bool {
	return r == nil || r.Error != nil || len(r.Payload) == 0
}

// Sender sends email through a provider.
//
// A provider-reported rejection comes back as a Result with Error set and a nil
// error. A non-nil error means the call itself failed (transport, encoding) and
// the outcome is unknown.
type Sender interface {
	Send(ctx context.Context, msg *Message) (*Result, error)
}
