package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/magicace/enquiry-api/internal/models"
	apperrors "github.com/magicace/enquiry-api/pkg/errors"
)

// Body returned for every 500 on the enquiry endpoint. Provider rejections and
// unexpected failures are not distinguished on the wire.
const sendFailedMessage = "Failed to send email"

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, models.ErrorResponse{Error: message})
}

// respondValidationError sends a 400-style response with field-level issues
// and attaches them as an apperrors.ErrInvalidInput error.
func respondValidationError(c *gin.Context, status int, details []models.ValidationIssue) {
	attachError(c, validationError(details))
	c.JSON(status, models.ValidationErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}

// validationError folds issues into one invalid-input error; a root-level
// issue is reported against "body".
func validationError(issues []models.ValidationIssue) error {
	fields := make([]string, 0, len(issues))
	reasons := make([]string, 0, len(issues))
	for _, issue := range issues {
		field := issue.Field
		if field == "" {
			field = "body"
		}
		fields = append(fields, field)
		reasons = append(reasons, issue.Message)
	}
	return apperrors.InvalidInputError(strings.Join(fields, ","), strings.Join(reasons, "; "))
}
