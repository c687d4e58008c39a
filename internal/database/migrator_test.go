package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)

	assert.NotNil(t, runner)
	assert.Equal(t, migrationsPath, runner.migrationsPath)
}

func TestRunMigrations_MissingDirectorySkips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)
	runner.migrationsPath = "testdata/does-not-exist"

	// No queries should hit the database when the directory is absent
	err = runner.RunMigrations()
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
	assert.NoError(t, db.CreateIndexes())
}
