package handlers

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/magicace/enquiry-api/internal/models"
	apperrors "github.com/magicace/enquiry-api/pkg/errors"
)

func init() {
	// Report fields by their JSON names so issues match the request body
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// ParseValidationErrors converts binding errors into field-level issues.
// It returns nil when err is not a validation failure (e.g. malformed JSON).
func ParseValidationErrors(err error) []models.ValidationIssue {
	var issues []models.ValidationIssue

	var validationErrors validator.ValidationErrors
	if apperrors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			issues = append(issues, models.ValidationIssue{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
		return issues
	}

	var typeErr *json.UnmarshalTypeError
	if apperrors.As(err, &typeErr) {
		// Empty Field means the body itself is valid JSON but not an object
		if typeErr.Field == "" {
			return append(issues, models.ValidationIssue{
				Field:   "",
				Message: "Expected object, received " + typeErr.Value,
			})
		}
		issues = append(issues, models.ValidationIssue{
			Field:   typeErr.Field,
			Message: typeErr.Field + " must be a " + typeErr.Type.String(),
		})
	}

	return issues
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
