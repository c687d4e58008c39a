package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_Defaults() {
	response := NewErrorResponse(CategoryNotFound, "trace-123")

	s.Equal("CATEGORY_001", response.Error.Code)
	s.Equal("Category not found", response.Error.Message)
	s.Equal("trace-123", response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithOptions() {
	response := NewErrorResponse(FormatBadRow, "trace-123",
		WithMessage("line 3 has 2 columns, expected 4"),
		WithDetails("line: 3", "format: generic"),
	)

	s.Equal("line 3 has 2 columns, expected 4", response.Error.Message)
	s.Equal([]string{"line: 3", "format: generic"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError() {
	response := NewValidationError(map[string]string{
		"month": "must match YYYY-MM",
	}, "trace-123")

	s.Equal(string(ValidationGeneral), response.Error.Code)
	s.Len(response.Error.Details, 1)
	s.Contains(response.Error.Details[0], "month")
}

func (s *ResponseTestSuite) TestNewValidationErrorFromList() {
	details := []string{"name is required", "type is invalid"}
	response := NewValidationErrorFromList(details, "trace-123")

	s.Equal(details, response.Error.Details)
	s.Equal("trace-123", response.Error.TraceID)
}

func (s *ResponseTestSuite) TestWrapSystemError_HidesInternalDetail() {
	internal := json.Unmarshal([]byte("{"), &struct{}{})
	response, err := WrapSystemError(internal, "trace-123")

	s.Equal(internal, err, "the raw error comes back for server-side logging")
	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "unexpected end",
		"client-facing message never leaks the internal error text")
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ImportInvalidSort, http.StatusBadRequest},
		{CategoryNotFound, http.StatusNotFound},
		{ImportSessionNotFound, http.StatusNotFound},
		{CategoryInUse, http.StatusConflict},
		{FormatHeaderMismatch, http.StatusUnprocessableEntity},
		{ImportCategoryRequired, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{VaultNotConfigured, http.StatusServiceUnavailable},
		{ImportCommitFailed, http.StatusInternalServerError},
		{VaultDecryptionFailed, http.StatusInternalServerError},
		{ErrorCode("UNKNOWN_123"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, GetHTTPStatus(tc.code), "code %s", tc.code)
	}
}

func (s *ResponseTestSuite) TestClientServerClassification() {
	s.True(NewErrorResponse(CategoryNotFound, "t").IsClientError())
	s.False(NewErrorResponse(CategoryNotFound, "t").IsServerError())

	s.True(NewErrorResponse(SystemDatabaseError, "t").IsServerError())
	s.False(NewErrorResponse(SystemDatabaseError, "t").IsClientError())
}

func (s *ResponseTestSuite) TestToJSON() {
	response := NewErrorResponse(BudgetNotFound, "trace-123")

	raw, err := response.ToJSON()
	s.Require().NoError(err)

	var decoded ErrorResponse
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	s.Equal("BUDGET_001", decoded.Error.Code)
	s.Equal("trace-123", decoded.Error.TraceID)
}
