package services

import (
	"context"
	"encoding/json"

	"github.com/magicace/enquiry-api/internal/models"
)

// EnquiryServiceInterface defines the interface for enquiry service operations
type EnquiryServiceInterface interface {
	SubmitEnquiry(ctx context.Context, req *models.EnquiryRequest) (json.RawMessage, error)
}

// Compile-time check that the concrete service implements the interface
var _ EnquiryServiceInterface = (*EnquiryService)(nil)
