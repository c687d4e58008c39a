package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "budgetvault/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for the custom HTTP error handler
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) decode(rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	var response apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

// TestEchoHTTPError tests handling of echo.HTTPError values
func (s *ErrorHandlerTestSuite) TestEchoHTTPError() {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "trace-404")

	CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	s.Equal(http.StatusNotFound, rec.Code)
	response := s.decode(rec)
	s.Equal(string(apperrors.TransactionNotFound), response.Error.Code)
	s.Equal("trace-404", response.Error.TraceID)
}

// TestGenericError tests that arbitrary errors become opaque system errors
func (s *ErrorHandlerTestSuite) TestGenericError() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	CustomHTTPErrorHandler(errors.New("gorm: connection refused"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	response := s.decode(rec)
	s.Equal(string(apperrors.SystemInternalError), response.Error.Code)
	s.Equal("unknown", response.Error.TraceID, "missing trace ID falls back to a placeholder")
}

// TestRateLimitStatus tests the 429 mapping
func (s *ErrorHandlerTestSuite) TestRateLimitStatus() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), c)

	s.Equal(http.StatusTooManyRequests, rec.Code)
	response := s.decode(rec)
	s.Equal(string(apperrors.SystemRateLimitExceeded), response.Error.Code)
}

// TestCommittedResponse tests that an already-committed response is left alone
func (s *ErrorHandlerTestSuite) TestCommittedResponse() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(c.NoContent(http.StatusOK))
	CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Body.String())
}
