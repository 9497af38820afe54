package handlers

import (
	"context"
	"encoding/json"

	"github.com/magicace/enquiry-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockEnquiryService is a mock implementation of services.EnquiryServiceInterface
type MockEnquiryService struct {
	mock.Mock
}

func (m *MockEnquiryService) SubmitEnquiry(ctx context.Context, req *models.EnquiryRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockReporter is a mock implementation of monitor.Reporter
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, err error) {
	m.Called(ctx, err)
}
