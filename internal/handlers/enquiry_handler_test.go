package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/magicace/enquiry-api/internal/models"
	apperrors "github.com/magicace/enquiry-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEnquiryRouter(service *MockEnquiryService, reporter *MockReporter) *gin.Engine {
	handler := NewEnquiryHandler(service, reporter)
	router := gin.New()
	router.POST("/api/enquiry", handler.SubmitEnquiry)
	return router
}

func postEnquiry(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeValidation(t *testing.T, w *httptest.ResponseRecorder) models.ValidationErrorResponse {
	t.Helper()
	var resp models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func issueFields(resp models.ValidationErrorResponse) []string {
	fields := make([]string, 0, len(resp.Details))
	for _, issue := range resp.Details {
		fields = append(fields, issue.Field)
	}
	return fields
}

func TestEnquiryHandler_Success(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	service.On("SubmitEnquiry", mock.Anything, &models.EnquiryRequest{Email: "a@b.com", Message: "hi"}).
		Return(json.RawMessage(`{"id":"abc123"}`), nil).Once()

	w := postEnquiry(router, `{"email":"a@b.com","message":"hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc123"}`, w.Body.String())
	service.AssertExpectations(t)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestEnquiryHandler_InvalidEmail(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	w := postEnquiry(router, `{"email":"not-an-email","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	resp := decodeValidation(t, w)
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Equal(t, []string{"email"}, issueFields(resp))
	assert.Equal(t, "Invalid email format", resp.Details[0].Message)

	service.AssertNotCalled(t, "SubmitEnquiry", mock.Anything, mock.Anything)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestEnquiryHandler_EmptyMessage(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	w := postEnquiry(router, `{"email":"a@b.com","message":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeValidation(t, w)
	assert.Equal(t, []string{"message"}, issueFields(resp))

	service.AssertNotCalled(t, "SubmitEnquiry", mock.Anything, mock.Anything)
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestEnquiryHandler_MissingFields(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	w := postEnquiry(router, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeValidation(t, w)
	assert.ElementsMatch(t, []string{"email", "message"}, issueFields(resp))
}

func TestEnquiryHandler_WrongFieldType(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	w := postEnquiry(router, `{"email":5,"message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeValidation(t, w)
	assert.Equal(t, []string{"email"}, issueFields(resp))
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestEnquiryHandler_SendFailure(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	service.On("SubmitEnquiry", mock.Anything, mock.Anything).
		Return(nil, apperrors.SendFailedError("email provider", "validation_error: Invalid `to` field")).Once()

	w := postEnquiry(router, `{"email":"a@b.com","message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
}

func TestEnquiryHandler_UnexpectedError(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	boom := errors.New("boom")
	service.On("SubmitEnquiry", mock.Anything, mock.Anything).Return(nil, boom).Once()
	reporter.On("Report", mock.Anything, boom).Return().Once()

	w := postEnquiry(router, `{"email":"a@b.com","message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	reporter.AssertExpectations(t)
	reporter.AssertNumberOfCalls(t, "Report", 1)
}

func TestEnquiryHandler_MalformedJSON(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	router := setupEnquiryRouter(service, reporter)

	reporter.On("Report", mock.Anything, mock.Anything).Return().Once()

	w := postEnquiry(router, `{"email":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	service.AssertNotCalled(t, "SubmitEnquiry", mock.Anything, mock.Anything)
	reporter.AssertExpectations(t)
}

func TestEnquiryHandler_NonObjectBody(t *testing.T) {
	bodies := map[string]string{
		"empty array":  `[]`,
		"string":       `"hi"`,
		"number":       `42`,
		"array of obj": `[{"email":"a@b.com","message":"hi"}]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			service := new(MockEnquiryService)
			reporter := new(MockReporter)
			router := setupEnquiryRouter(service, reporter)

			w := postEnquiry(router, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeValidation(t, w)
			assert.Equal(t, "Validation failed", resp.Error)
			require.Len(t, resp.Details, 1)
			assert.Equal(t, "", resp.Details[0].Field)
			assert.Contains(t, resp.Details[0].Message, "Expected object")

			service.AssertNotCalled(t, "SubmitEnquiry", mock.Anything, mock.Anything)
			reporter.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
		})
	}
}

func TestEnquiryHandler_ValidationAttachesInvalidInput(t *testing.T) {
	service := new(MockEnquiryService)
	reporter := new(MockReporter)
	handler := NewEnquiryHandler(service, reporter)

	var attached []error
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		for _, ginErr := range c.Errors {
			attached = append(attached, ginErr.Err)
		}
	})
	router.POST("/api/enquiry", handler.SubmitEnquiry)

	w := postEnquiry(router, `{"email":"not-an-email","message":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, attached, 1)
	assert.True(t, apperrors.Is(attached[0], apperrors.ErrInvalidInput))
	assert.Contains(t, attached[0].Error(), "email,message")
}

func TestParseValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, ParseValidationErrors(errors.New("unexpected EOF")))
}
