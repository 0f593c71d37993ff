package repository_test

import (
	"errors"
	"testing"

	"sshtunnelapi/models"
	"sshtunnelapi/repository"
	"sshtunnelapi/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSSHTunnelRepository_SaveIsVisibleToGet(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	repo := repository.NewSSHTunnelRepositoryWithDB(db)

	tunnel, err := repo.GetByDatabaseID(nil, database.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", tunnel.ServerAddress)

	port := 2222
	secret := "secret"
	tunnel.ServerAddress = "Test2"
	tunnel.ServerPort = &port
	tunnel.Password = &secret
	require.NoError(t, repo.Save(nil, tunnel))

	got, err := repo.GetByDatabaseID(nil, database.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test2", got.ServerAddress)
	assert.Equal(t, 2222, *got.ServerPort)

	got.Password = nil
	require.NoError(t, repo.Save(nil, got))
	got, err = repo.GetByDatabaseID(nil, database.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Password)

	count, err := repo.CountByDatabaseID(nil, database.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSSHTunnelRepository_GetMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSSHTunnelRepositoryWithDB(db)

	_, err := repo.GetByDatabaseID(nil, 99)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSSHTunnelRepository_RollbackDiscardsSave(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	repo := repository.NewSSHTunnelRepositoryWithDB(db)

	tx := repository.NewBaseRepositoryWithDB(db).Begin()
	tunnel, err := repo.GetByDatabaseID(tx, database.ID)
	require.NoError(t, err)
	tunnel.ServerAddress = "Discarded"
	require.NoError(t, repo.Save(tx, tunnel))
	require.NoError(t, tx.Rollback().Error)

	got, err := repo.GetByDatabaseID(nil, database.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", got.ServerAddress)
}

func TestDatabaseRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewDatabaseRepositoryWithDB(db)

	database := models.Database{DatabaseName: "analytics", SQLAlchemyURI: "postgresql://u:p@pg/analytics"}
	require.NoError(t, repo.Create(nil, &database))
	assert.NotZero(t, database.ID)

	got, err := repo.GetByID(nil, database.ID)
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@pg/analytics", got.SQLAlchemyURI)

	count, err := repo.CountByName(nil, "analytics")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
