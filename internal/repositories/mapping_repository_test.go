package repositories

import (
	"testing"

	"budgetvault/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type MappingRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo MappingRepositoryInterface
}

func (s *MappingRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	err = db.AutoMigrate(&models.DescriptionMapping{}, &models.AccountMapping{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewMappingRepository(db)
}

func (s *MappingRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func TestMappingRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MappingRepositoryTestSuite))
}

func (s *MappingRepositoryTestSuite) TestSetDescription_NormalizesKey() {
	err := s.repo.SetDescription("  STARBUCKS #123  ", "enc:Coffee", "enc:Starbucks")
	s.Require().NoError(err)

	mapping, err := s.repo.GetDescription("Starbucks #123")
	s.Require().NoError(err)
	s.Equal("starbucks #123", mapping.Description)
	s.Equal("enc:Coffee", mapping.EncryptedCategoryName)
	s.Equal("enc:Starbucks", mapping.EncryptedPayeeName)
}

func (s *MappingRepositoryTestSuite) TestSetDescription_UpsertKeepsSingleRecord() {
	s.Require().NoError(s.repo.SetDescription("starbucks #123", "enc:Coffee", ""))
	s.Require().NoError(s.repo.SetDescription("STARBUCKS #123", "enc:Dining", ""))

	mappings, err := s.repo.GetAllDescriptions()
	s.Require().NoError(err)
	s.Len(mappings, 1, "at most one mapping per normalized description")
	s.Equal("enc:Dining", mappings[0].EncryptedCategoryName)
}

func (s *MappingRepositoryTestSuite) TestGetDescription_NotFound() {
	_, err := s.repo.GetDescription("never seen")
	s.ErrorIs(err, ErrDescriptionMappingNotFound)
}

func (s *MappingRepositoryTestSuite) TestDeleteDescription() {
	s.Require().NoError(s.repo.SetDescription("payroll", "enc:Income", ""))

	s.Require().NoError(s.repo.DeleteDescription("PAYROLL"))

	_, err := s.repo.GetDescription("payroll")
	s.ErrorIs(err, ErrDescriptionMappingNotFound)

	err = s.repo.DeleteDescription("payroll")
	s.ErrorIs(err, ErrDescriptionMappingNotFound)
}

func (s *MappingRepositoryTestSuite) TestSetAccount_Upsert() {
	s.Require().NoError(s.repo.SetAccount("1111", ""))
	s.Require().NoError(s.repo.SetAccount("1111", "enc:Checking"))

	mappings, err := s.repo.GetAllAccounts()
	s.Require().NoError(err)
	s.Len(mappings, 1)
	s.Equal("enc:Checking", mappings[0].EncryptedName)
}

func (s *MappingRepositoryTestSuite) TestGetAccount_NotFound() {
	_, err := s.repo.GetAccount("9999")
	s.ErrorIs(err, ErrAccountMappingNotFound)
}

func (s *MappingRepositoryTestSuite) TestSetDescription_RejectsEmptyKey() {
	err := s.repo.SetDescription("   ", "enc:Coffee", "")
	s.ErrorIs(err, models.ErrMappingDescriptionEmpty)
}

func (s *MappingRepositoryTestSuite) TestClearDescriptionsAndAccounts() {
	s.Require().NoError(s.repo.SetDescription("payroll", "enc:Income", ""))
	s.Require().NoError(s.repo.SetAccount("1111", ""))

	s.Require().NoError(s.repo.ClearDescriptions())
	s.Require().NoError(s.repo.ClearAccounts())

	descriptions, err := s.repo.GetAllDescriptions()
	s.Require().NoError(err)
	s.Empty(descriptions)

	accounts, err := s.repo.GetAllAccounts()
	s.Require().NoError(err)
	s.Empty(accounts)
}
