// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"sshtunnelapi/bootstrap"
	"sshtunnelapi/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database private to the test.
// The pool is limited to one connection so every query sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, bootstrap.Migrate(db))
	return db
}

// SeedTunnel stores a database with the given connection string and a tunnel
// pointing at serverAddress with no explicit port, mirroring a freshly created record.
func SeedTunnel(t *testing.T, db *gorm.DB, uri, serverAddress string) (models.Database, models.SSHTunnel) {
	t.Helper()

	database := models.Database{DatabaseName: "my_database", SQLAlchemyURI: uri}
	require.NoError(t, db.Create(&database).Error)

	tunnel := models.SSHTunnel{DatabaseID: database.ID, ServerAddress: serverAddress}
	require.NoError(t, db.Create(&tunnel).Error)
	return database, tunnel
}
