package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetvault/internal/database"
	"budgetvault/internal/dto"
	"budgetvault/internal/errors"
	"budgetvault/internal/repositories"
	"budgetvault/internal/vault"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	vault   *vault.Vault
	handler *BudgetHandler
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func (s *BudgetHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewCustomValidator()

	s.db = database.SetupTestDB(s.T())
	s.vault = database.SetupTestVault(s.T())

	s.handler = NewBudgetHandler(
		repositories.NewBudgetRepository(s.db.DB),
		repositories.NewCategoryRepository(s.db.DB),
		s.vault,
	)
}

func (s *BudgetHandlerTestSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *BudgetHandlerTestSuite) TestSetAndListBudgets() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")

	body := fmt.Sprintf(`{"category_id":%d,"month":"2024-06","amount":"500"}`, category.ID)
	c, rec := s.request(http.MethodPut, "/api/v1/budgets", body)
	s.Require().NoError(s.handler.SetBudget(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	c, rec = s.request(http.MethodGet, "/api/v1/budgets/2024-06", "")
	c.SetParamNames("month")
	c.SetParamValues("2024-06")
	s.Require().NoError(s.handler.ListBudgets(c))

	var resp dto.ListBudgetsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("2024-06", resp.Month)
	s.Require().Len(resp.Budgets, 1)
	s.Equal(category.ID, resp.Budgets[0].CategoryID)
	s.Equal("500", resp.Budgets[0].Amount)
}

func (s *BudgetHandlerTestSuite) TestSetBudget_UpsertsExistingMonth() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")

	for _, amount := range []string{"300", "450"} {
		body := fmt.Sprintf(`{"category_id":%d,"month":"2024-06","amount":%q}`, category.ID, amount)
		c, rec := s.request(http.MethodPut, "/api/v1/budgets", body)
		s.Require().NoError(s.handler.SetBudget(c))
		s.Require().Equal(http.StatusOK, rec.Code)
	}

	c, rec := s.request(http.MethodGet, "/api/v1/budgets/2024-06", "")
	c.SetParamNames("month")
	c.SetParamValues("2024-06")
	s.Require().NoError(s.handler.ListBudgets(c))

	var resp dto.ListBudgetsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Budgets, 1)
	s.Equal("450", resp.Budgets[0].Amount)
}

func (s *BudgetHandlerTestSuite) TestSetBudget_CategoryNotFound() {
	c, rec := s.request(http.MethodPut, "/api/v1/budgets",
		`{"category_id":999,"month":"2024-06","amount":"500"}`)

	s.Require().NoError(s.handler.SetBudget(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.CategoryNotFound), resp.Error.Code)
}

func (s *BudgetHandlerTestSuite) TestSetBudget_InvalidMonth() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")

	body := fmt.Sprintf(`{"category_id":%d,"month":"June 2024","amount":"500"}`, category.ID)
	c, _ := s.request(http.MethodPut, "/api/v1/budgets", body)
	s.Error(s.handler.SetBudget(c))
}

func (s *BudgetHandlerTestSuite) TestListBudgets_InvalidMonth() {
	c, rec := s.request(http.MethodGet, "/api/v1/budgets/junk", "")
	c.SetParamNames("month")
	c.SetParamValues("junk")

	s.Require().NoError(s.handler.ListBudgets(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestListBudgets_EmptyMonth() {
	c, rec := s.request(http.MethodGet, "/api/v1/budgets/2030-01", "")
	c.SetParamNames("month")
	c.SetParamValues("2030-01")

	s.Require().NoError(s.handler.ListBudgets(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ListBudgetsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Empty(resp.Budgets)
}
