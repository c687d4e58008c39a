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

type CategoryHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	vault   *vault.Vault
	handler *CategoryHandler
}

func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerTestSuite))
}

func (s *CategoryHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewCustomValidator()

	s.db = database.SetupTestDB(s.T())
	s.vault = database.SetupTestVault(s.T())

	s.handler = NewCategoryHandler(
		repositories.NewCategoryRepository(s.db.DB),
		repositories.NewTransactionRepository(s.db.DB),
		s.vault,
	)
}

func (s *CategoryHandlerTestSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *CategoryHandlerTestSuite) TestCreateCategory() {
	c, rec := s.request(http.MethodPost, "/api/v1/categories",
		`{"name":"Groceries","type":"expense","limit":"500"}`)

	s.Require().NoError(s.handler.CreateCategory(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var view dto.CategoryView
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &view))
	s.NotZero(view.ID)
	s.Equal("Groceries", view.Name)
	s.Equal("expense", view.Type)
	s.Equal("500", view.Limit)

	// The stored name is ciphertext, not the plaintext
	stored, err := repositories.NewCategoryRepository(s.db.DB).GetByID(view.ID)
	s.Require().NoError(err)
	s.NotEqual("Groceries", stored.EncryptedName)
	name, err := s.vault.Decrypt(stored.EncryptedName)
	s.Require().NoError(err)
	s.Equal("Groceries", name)
}

func (s *CategoryHandlerTestSuite) TestCreateCategory_ReservedName() {
	for _, name := range []string{"Transfer", "transfer", "  TRANSFER  "} {
		c, rec := s.request(http.MethodPost, "/api/v1/categories",
			fmt.Sprintf(`{"name":%q,"type":"expense"}`, name))

		s.Require().NoError(s.handler.CreateCategory(c))
		s.Equal(http.StatusConflict, rec.Code)

		var resp errors.ErrorResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(string(errors.CategoryNameReserved), resp.Error.Code)
	}
}

func (s *CategoryHandlerTestSuite) TestCreateCategory_InvalidType() {
	c, _ := s.request(http.MethodPost, "/api/v1/categories",
		`{"name":"Groceries","type":"splurge"}`)

	s.Error(s.handler.CreateCategory(c))
}

func (s *CategoryHandlerTestSuite) TestListCategories() {
	database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")
	database.CreateTestCategory(s.T(), s.db, s.vault, "Salary", "income")

	c, rec := s.request(http.MethodGet, "/api/v1/categories", "")
	s.Require().NoError(s.handler.ListCategories(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp dto.ListCategoriesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Categories, 2)

	names := []string{resp.Categories[0].Name, resp.Categories[1].Name}
	s.Contains(names, "Groceries")
	s.Contains(names, "Salary")
}

func (s *CategoryHandlerTestSuite) TestUpdateCategory() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")

	c, rec := s.request(http.MethodPut, "/api/v1/categories/1",
		`{"name":"Food","type":"expense"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", category.ID))

	s.Require().NoError(s.handler.UpdateCategory(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	stored, err := repositories.NewCategoryRepository(s.db.DB).GetByID(category.ID)
	s.Require().NoError(err)
	name, err := s.vault.Decrypt(stored.EncryptedName)
	s.Require().NoError(err)
	s.Equal("Food", name)
}

func (s *CategoryHandlerTestSuite) TestUpdateCategory_NotFound() {
	c, rec := s.request(http.MethodPut, "/api/v1/categories/999",
		`{"name":"Food","type":"expense"}`)
	c.SetParamNames("id")
	c.SetParamValues("999")

	s.Require().NoError(s.handler.UpdateCategory(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *CategoryHandlerTestSuite) TestDeleteCategory() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")

	c, rec := s.request(http.MethodDelete, "/api/v1/categories/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", category.ID))

	s.Require().NoError(s.handler.DeleteCategory(c))
	s.Equal(http.StatusOK, rec.Code)

	_, err := repositories.NewCategoryRepository(s.db.DB).GetByID(category.ID)
	s.Error(err)
}

func (s *CategoryHandlerTestSuite) TestDeleteCategory_StillInUse() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")
	database.CreateTestTransaction(s.T(), s.db, s.vault,
		"2024-06-01", "-10.00", "GROCERY MART", "1234567890", &category.ID)

	c, rec := s.request(http.MethodDelete, "/api/v1/categories/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", category.ID))

	s.Require().NoError(s.handler.DeleteCategory(c))
	s.Equal(http.StatusConflict, rec.Code)

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.CategoryInUse), resp.Error.Code)

	// The category survives
	_, err := repositories.NewCategoryRepository(s.db.DB).GetByID(category.ID)
	s.NoError(err)
}

func (s *CategoryHandlerTestSuite) TestDeleteCategory_NotFound() {
	c, rec := s.request(http.MethodDelete, "/api/v1/categories/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")

	s.Require().NoError(s.handler.DeleteCategory(c))
	s.Equal(http.StatusNotFound, rec.Code)
}
