package models

// EnquiryRequest is the JSON body accepted by POST /api/enquiry
type EnquiryRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=1"`
}

// ValidationIssue describes one field that failed validation
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is returned with 400 when an enquiry fails validation
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationIssue `json:"details"`
}

// ErrorResponse is the generic error body
type ErrorResponse struct {
	Error string `json:"error"`
}
