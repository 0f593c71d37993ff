package repository

import (
	"sshtunnelapi/config"
	"sshtunnelapi/models"

	"gorm.io/gorm"
)

// SSHTunnelRepository provides data access operations for SSH tunnel records.
// Tunnels are addressed by the id of the database that owns them.
type SSHTunnelRepository interface {
	GetByDatabaseID(tx *gorm.DB, databaseID uint) (*models.SSHTunnel, error)
	CountByDatabaseID(tx *gorm.DB, databaseID uint) (int64, error)
	Create(tx *gorm.DB, tunnel *models.SSHTunnel) error
	Save(tx *gorm.DB, tunnel *models.SSHTunnel) error
}

type sshTunnelRepository struct {
	db *gorm.DB
}

// NewSSHTunnelRepository creates a new SSH tunnel repository instance.
func NewSSHTunnelRepository() SSHTunnelRepository {
	return NewSSHTunnelRepositoryWithDB(config.DB)
}

// NewSSHTunnelRepositoryWithDB creates an SSH tunnel repository bound to the given handle.
func NewSSHTunnelRepositoryWithDB(db *gorm.DB) SSHTunnelRepository {
	return &sshTunnelRepository{
		db: db,
	}
}

func (r *sshTunnelRepository) GetByDatabaseID(tx *gorm.DB, databaseID uint) (*models.SSHTunnel, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var tunnel models.SSHTunnel
	if err := db.Where("database_id = ?", databaseID).First(&tunnel).Error; err != nil {
		return nil, err
	}
	return &tunnel, nil
}

func (r *sshTunnelRepository) CountByDatabaseID(tx *gorm.DB, databaseID uint) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var count int64
	if err := db.Model(&models.SSHTunnel{}).Where("database_id = ?", databaseID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *sshTunnelRepository) Create(tx *gorm.DB, tunnel *models.SSHTunnel) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Create(tunnel).Error
}

// Save writes every column, so fields cleared to nil are persisted as NULL.
func (r *sshTunnelRepository) Save(tx *gorm.DB, tunnel *models.SSHTunnel) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Save(tunnel).Error
}
