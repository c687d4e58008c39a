package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetvault/internal/database"
	"budgetvault/internal/repositories"
	"budgetvault/internal/vault"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type MaintenanceHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	vault   *vault.Vault
	handler *MaintenanceHandler
}

func TestMaintenanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceHandlerTestSuite))
}

func (s *MaintenanceHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.db = database.SetupTestDB(s.T())
	s.vault = database.SetupTestVault(s.T())
	s.handler = NewMaintenanceHandler(repositories.NewMaintenanceRepository(s.db.DB))
}

func (s *MaintenanceHandlerTestSuite) context(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *MaintenanceHandlerTestSuite) seed() {
	category := database.CreateTestCategory(s.T(), s.db, s.vault, "Groceries", "expense")
	database.CreateTestTransaction(s.T(), s.db, s.vault,
		"2024-06-01", "-10.00", "GROCERY MART", "1234567890", &category.ID)

	enc, err := s.vault.Encrypt("Groceries")
	s.Require().NoError(err)
	mappingRepo := repositories.NewMappingRepository(s.db.DB)
	s.Require().NoError(mappingRepo.SetDescription("grocery mart", enc, ""))
	s.Require().NoError(mappingRepo.SetAccount("1234567890", enc))
}

func (s *MaintenanceHandlerTestSuite) TestClearTransactions() {
	s.seed()

	c, rec := s.context("/api/v1/maintenance/transactions")
	s.Require().NoError(s.handler.ClearTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	transactions, err := repositories.NewTransactionRepository(s.db.DB).GetAll()
	s.Require().NoError(err)
	s.Empty(transactions)

	// Categories and mappings survive
	categories, err := repositories.NewCategoryRepository(s.db.DB).GetAll()
	s.Require().NoError(err)
	s.Len(categories, 1)
	mappings, err := repositories.NewMappingRepository(s.db.DB).GetAllDescriptions()
	s.Require().NoError(err)
	s.Len(mappings, 1)
}

func (s *MaintenanceHandlerTestSuite) TestClearMappings() {
	s.seed()

	c, rec := s.context("/api/v1/maintenance/mappings")
	s.Require().NoError(s.handler.ClearMappings(c))
	s.Equal(http.StatusOK, rec.Code)

	mappingRepo := repositories.NewMappingRepository(s.db.DB)
	descriptions, err := mappingRepo.GetAllDescriptions()
	s.Require().NoError(err)
	s.Empty(descriptions)
	accounts, err := mappingRepo.GetAllAccounts()
	s.Require().NoError(err)
	s.Empty(accounts)

	transactions, err := repositories.NewTransactionRepository(s.db.DB).GetAll()
	s.Require().NoError(err)
	s.Len(transactions, 1)
}

func (s *MaintenanceHandlerTestSuite) TestClearAllData() {
	s.seed()

	c, rec := s.context("/api/v1/maintenance/all")
	s.Require().NoError(s.handler.ClearAllData(c))
	s.Equal(http.StatusOK, rec.Code)

	transactions, err := repositories.NewTransactionRepository(s.db.DB).GetAll()
	s.Require().NoError(err)
	s.Empty(transactions)
	categories, err := repositories.NewCategoryRepository(s.db.DB).GetAll()
	s.Require().NoError(err)
	s.Empty(categories)
	mappings, err := repositories.NewMappingRepository(s.db.DB).GetAllDescriptions()
	s.Require().NoError(err)
	s.Empty(mappings)
}
