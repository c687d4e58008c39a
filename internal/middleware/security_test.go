package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// SecurityHeadersTestSuite defines the test suite for security headers middleware
type SecurityHeadersTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *SecurityHeadersTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestSecurityHeadersTestSuite runs the test suite
func TestSecurityHeadersTestSuite(t *testing.T) {
	suite.Run(t, new(SecurityHeadersTestSuite))
}

// TestSecurityHeaders_SetsAllHeaders tests that all expected headers are present
func (s *SecurityHeadersTestSuite) TestSecurityHeaders_SetsAllHeaders() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	s.NoError(handler(c))

	expected := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Content-Security-Policy":   "default-src 'self'",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Cache-Control":             "no-store, no-cache, must-revalidate, private",
		"Pragma":                    "no-cache",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for header, value := range expected {
		s.Equal(value, rec.Header().Get(header), "header %s", header)
	}
}

// TestSecurityHeaders_NoCaching tests the no-store cache policy on data responses
func (s *SecurityHeadersTestSuite) TestSecurityHeaders_NoCaching() {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"description": "Coffee Shop"})
	})
	s.NoError(handler(c))

	s.Contains(rec.Header().Get("Cache-Control"), "no-store")
	s.Equal("0", rec.Header().Get("Expires"))
}
