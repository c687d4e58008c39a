package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetvault/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type HealthHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
	db   *database.DB
}

func TestHealthHandlerSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlerTestSuite))
}

func (s *HealthHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.db = database.SetupTestDB(s.T())
}

func (s *HealthHandlerTestSuite) TestHealthCheck_Healthy() {
	handler := NewHealthCheckHandler(s.db.DB)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(handler.HealthCheck(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("healthy", resp["status"])
	s.NotEmpty(resp["time"])
}
