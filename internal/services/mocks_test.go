package services_test

import (
	"context"

	"github.com/magicace/enquiry-api/pkg/mailer"
	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *mailer.Message) (*mailer.Result, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailer.Result), args.Error(1)
}
