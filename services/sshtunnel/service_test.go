package sshtunnel_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"testing"

	"sshtunnelapi/models"
	"sshtunnelapi/repository"
	"sshtunnelapi/services/dto"
	"sshtunnelapi/services/sshtunnel"
	"sshtunnelapi/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) sshtunnel.SSHTunnelService {
	return sshtunnel.NewSSHTunnelServiceWithDeps(
		repository.NewBaseRepositoryWithDB(db),
		repository.NewDatabaseRepositoryWithDB(db),
		repository.NewSSHTunnelRepositoryWithDB(db),
	)
}

func loadTunnel(t *testing.T, db *gorm.DB, databaseID uint) models.SSHTunnel {
	t.Helper()
	tunnel, err := repository.NewSSHTunnelRepositoryWithDB(db).GetByDatabaseID(nil, databaseID)
	require.NoError(t, err)
	return *tunnel
}

func TestUpdate_ChangesServerAddress(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	srv := newService(db)

	before := loadTunnel(t, db, database.ID)
	assert.Equal(t, database.ID, before.DatabaseID)
	assert.Equal(t, "Test", before.ServerAddress)

	_, err := srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{ServerAddress: dto.Value("Test2")})
	require.NoError(t, err)

	after := loadTunnel(t, db, database.ID)
	assert.Equal(t, "Test2", after.ServerAddress)
	require.NotNil(t, after.ServerPort)
	assert.Equal(t, 5432, *after.ServerPort)
}

func TestUpdate_InvalidParamsLeavesStoreUnchanged(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	srv := newService(db)

	_, err := srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{
		ServerAddress:      dto.Value("Changed"),
		PrivateKeyPassword: dto.Value("pass"),
	})
	require.ErrorIs(t, err, sshtunnel.ErrInvalidParameters)
	assert.Equal(t, "SSH Tunnel parameters are invalid.", err.Error())

	after := loadTunnel(t, db, database.ID)
	assert.Equal(t, "Test", after.ServerAddress)
	assert.Nil(t, after.PrivateKeyPassword)
	assert.Nil(t, after.ServerPort)
}

func TestUpdate_KeyPasswordWithoutKeyLeavesStoreUnchanged(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	srv := newService(db)

	_, err := srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{
		Password:           dto.Value("secret"),
		PrivateKeyPassword: dto.Value("pass"),
	})
	require.ErrorIs(t, err, sshtunnel.ErrInvalidParameters)

	after := loadTunnel(t, db, database.ID)
	assert.Nil(t, after.Password)
	assert.Nil(t, after.PrivateKeyPassword)

	key := generateKey(t)
	_, err = srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{PrivateKey: dto.Value(key)})
	require.NoError(t, err)

	_, err = srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{PrivateKeyPassword: dto.Value("pass")})
	require.ErrorIs(t, err, sshtunnel.ErrInvalidParameters)

	after = loadTunnel(t, db, database.ID)
	assert.Equal(t, key, *after.PrivateKey)
	assert.Nil(t, after.PrivateKeyPassword)
}

func TestUpdate_NoPortUsesSchemeDefault(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost/testdb", "Test")
	srv := newService(db)

	updated, err := srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{ServerAddress: dto.Value("Test2")})
	require.NoError(t, err)
	assert.Equal(t, 5432, *updated.ServerPort)

	after := loadTunnel(t, db, database.ID)
	assert.Equal(t, "Test2", after.ServerAddress)
	assert.Equal(t, 5432, *after.ServerPort)
}

func TestUpdate_NoPortNoDefault(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "weird+db://u:p@localhost/testdb", "Test")
	srv := newService(db)

	_, err := srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{ServerAddress: dto.Value("Test update")})
	require.ErrorIs(t, err, sshtunnel.ErrMissingPort)
	assert.Equal(t, "A database port is required when connecting via SSH Tunnel.", err.Error())

	after := loadTunnel(t, db, database.ID)
	assert.Equal(t, "Test", after.ServerAddress)
}

func TestUpdate_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	srv := newService(db)

	_, err := srv.Update(context.Background(), 42, dto.SSHTunnelPatch{ServerAddress: dto.Value("Test2")})
	assert.ErrorIs(t, err, sshtunnel.ErrNotFound)
}

func TestUpdate_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "mysql://u:p@localhost/db", "Test")
	srv := newService(db)
	patch := dto.SSHTunnelPatch{ServerAddress: dto.Value("bastion"), Username: dto.Value("tunnel"), Password: dto.Value("secret")}

	_, err := srv.Update(context.Background(), database.ID, patch)
	require.NoError(t, err)
	first := loadTunnel(t, db, database.ID)

	_, err = srv.Update(context.Background(), database.ID, patch)
	require.NoError(t, err)
	second := loadTunnel(t, db, database.ID)

	assert.Equal(t, first, second)
	assert.Equal(t, 3306, *second.ServerPort)
}

func TestUpdate_ClearsPasswordWhenKeySupplied(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	srv := newService(db)

	_, err := srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{Password: dto.Value("secret")})
	require.NoError(t, err)
	require.NotNil(t, loadTunnel(t, db, database.ID).Password)

	key := generateKey(t)
	_, err = srv.Update(context.Background(), database.ID, dto.SSHTunnelPatch{PrivateKey: dto.Value(key)})
	require.NoError(t, err)

	after := loadTunnel(t, db, database.ID)
	assert.Nil(t, after.Password)
	assert.Equal(t, key, *after.PrivateKey)
}

func TestCreate(t *testing.T) {
	db := testutil.NewDB(t)
	database := models.Database{DatabaseName: "analytics", SQLAlchemyURI: "mssql+pyodbc://u:p@sqlhost/analytics"}
	require.NoError(t, db.Create(&database).Error)
	srv := newService(db)

	created, err := srv.Create(context.Background(), database.ID, dto.SSHTunnelPatch{ServerAddress: dto.Value("bastion")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1433, *created.ServerPort)

	got, err := srv.Get(context.Background(), database.ID)
	require.NoError(t, err)
	assert.Equal(t, "bastion", got.ServerAddress)

	_, err = srv.Create(context.Background(), database.ID, dto.SSHTunnelPatch{ServerAddress: dto.Value("other")})
	assert.ErrorIs(t, err, sshtunnel.ErrAlreadyExists)

	_, err = srv.Create(context.Background(), database.ID+1, dto.SSHTunnelPatch{ServerAddress: dto.Value("other")})
	assert.ErrorIs(t, err, sshtunnel.ErrNotFound)
}

func TestGet_UsesRequestContext(t *testing.T) {
	db := testutil.NewDB(t)
	database, _ := testutil.SeedTunnel(t, db, "postgresql://u:p@localhost:5432/db", "Test")
	srv := newService(db)

	got, err := srv.Get(context.Background(), database.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", got.ServerAddress)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = srv.Get(ctx, database.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, sshtunnel.ErrNotFound)
}

func TestCreate_RequiresAddress(t *testing.T) {
	db := testutil.NewDB(t)
	database := models.Database{DatabaseName: "analytics", SQLAlchemyURI: "postgresql://u:p@pg/analytics"}
	require.NoError(t, db.Create(&database).Error)
	srv := newService(db)

	_, err := srv.Create(context.Background(), database.ID, dto.SSHTunnelPatch{ServerPort: dto.Value(22)})
	assert.ErrorIs(t, err, sshtunnel.ErrInvalidParameters)

	_, err = srv.Get(context.Background(), database.ID)
	assert.ErrorIs(t, err, sshtunnel.ErrNotFound)
}

func generateKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	return string(pem.EncodeToMemory(block))
}
