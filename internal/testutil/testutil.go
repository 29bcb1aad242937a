// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"testing"

	"flowboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenSQLite returns a migrated in-memory database. Each call gets its own database.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Stores returns gorm-backed stores over a fresh in-memory database.
func Stores(t *testing.T) repository.Stores {
	t.Helper()
	return repository.NewStores(OpenSQLite(t))
}

// MockPostgres returns a gorm handle speaking the postgres dialect to sqlmock.
func MockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gormDB, mock
}
