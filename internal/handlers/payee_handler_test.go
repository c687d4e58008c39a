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

type PayeeHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	vault   *vault.Vault
	handler *PayeeHandler
}

func TestPayeeHandlerSuite(t *testing.T) {
	suite.Run(t, new(PayeeHandlerTestSuite))
}

func (s *PayeeHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewCustomValidator()

	s.db = database.SetupTestDB(s.T())
	s.vault = database.SetupTestVault(s.T())

	s.handler = NewPayeeHandler(
		repositories.NewPayeeRepository(s.db.DB),
		repositories.NewTransactionRepository(s.db.DB),
		s.vault,
	)
}

func (s *PayeeHandlerTestSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *PayeeHandlerTestSuite) TestCreateAndListPayees() {
	c, rec := s.request(http.MethodPost, "/api/v1/payees", `{"name":"Corner Cafe"}`)
	s.Require().NoError(s.handler.CreatePayee(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var view dto.PayeeView
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &view))
	s.NotZero(view.ID)
	s.Equal("Corner Cafe", view.Name)

	c, rec = s.request(http.MethodGet, "/api/v1/payees", "")
	s.Require().NoError(s.handler.ListPayees(c))

	var resp dto.ListPayeesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Payees, 1)
	s.Equal("Corner Cafe", resp.Payees[0].Name)
}

func (s *PayeeHandlerTestSuite) TestCreatePayee_MissingName() {
	c, _ := s.request(http.MethodPost, "/api/v1/payees", `{}`)
	s.Error(s.handler.CreatePayee(c))
}

func (s *PayeeHandlerTestSuite) TestUpdatePayee() {
	payee := database.CreateTestPayee(s.T(), s.db, s.vault, "Corner Cafe")

	c, rec := s.request(http.MethodPut, "/api/v1/payees/1", `{"name":"Main St Cafe"}`)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", payee.ID))

	s.Require().NoError(s.handler.UpdatePayee(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	stored, err := repositories.NewPayeeRepository(s.db.DB).GetByID(payee.ID)
	s.Require().NoError(err)
	name, err := s.vault.Decrypt(stored.EncryptedName)
	s.Require().NoError(err)
	s.Equal("Main St Cafe", name)
}

func (s *PayeeHandlerTestSuite) TestUpdatePayee_NotFound() {
	c, rec := s.request(http.MethodPut, "/api/v1/payees/999", `{"name":"Ghost"}`)
	c.SetParamNames("id")
	c.SetParamValues("999")

	s.Require().NoError(s.handler.UpdatePayee(c))
	s.Equal(http.StatusNotFound, rec.Code)

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.PayeeNotFound), resp.Error.Code)
}

func (s *PayeeHandlerTestSuite) TestDeletePayee() {
	payee := database.CreateTestPayee(s.T(), s.db, s.vault, "Corner Cafe")

	c, rec := s.request(http.MethodDelete, "/api/v1/payees/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", payee.ID))

	s.Require().NoError(s.handler.DeletePayee(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *PayeeHandlerTestSuite) TestDeletePayee_StillInUse() {
	payee := database.CreateTestPayee(s.T(), s.db, s.vault, "Corner Cafe")
	txn := database.CreateTestTransaction(s.T(), s.db, s.vault,
		"2024-06-01", "-4.50", "COFFEE", "1234567890", nil)
	txn.PayeeID = &payee.ID
	s.Require().NoError(repositories.NewTransactionRepository(s.db.DB).Update(txn))

	c, rec := s.request(http.MethodDelete, "/api/v1/payees/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", payee.ID))

	s.Require().NoError(s.handler.DeletePayee(c))
	s.Equal(http.StatusConflict, rec.Code)

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.PayeeInUse), resp.Error.Code)
}

func (s *PayeeHandlerTestSuite) TestDeletePayee_NotFound() {
	c, rec := s.request(http.MethodDelete, "/api/v1/payees/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")

	s.Require().NoError(s.handler.DeletePayee(c))
	s.Equal(http.StatusNotFound, rec.Code)
}
