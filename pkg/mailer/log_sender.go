package mailer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/magicace/enquiry-api/pkg/logger"
	"go.uber.org/zap"
)

// LogSender logs messages instead of sending them. Used for local development
// when no provider key is configured.
type LogSender struct{}

// NewLogSender creates a dry-run sender
func NewLogSender() *LogSender {
	logger.Warn("Email dry-run enabled: enquiry emails will be logged, not sent")
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) (*Result, error) {
	id := uuid.NewString()

	logger.Info("Sending email (dry run)",
		zap.String("email_id", id),
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
		zap.String("request_id", logger.RequestIDFromContext(ctx)),
	)

	payload, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return nil, err
	}
	return &Result{Payload: payload}, nil
}
