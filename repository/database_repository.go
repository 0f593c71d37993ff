package repository

import (
	"sshtunnelapi/config"
	"sshtunnelapi/models"

	"gorm.io/gorm"
)

// DatabaseRepository provides data access operations for database connection records.
type DatabaseRepository interface {
	GetByID(tx *gorm.DB, id uint) (*models.Database, error)
	Create(tx *gorm.DB, database *models.Database) error
	CountByName(tx *gorm.DB, name string) (int64, error)
}

type databaseRepository struct {
	db *gorm.DB
}

// NewDatabaseRepository creates a new database connection repository instance.
func NewDatabaseRepository() DatabaseRepository {
	return NewDatabaseRepositoryWithDB(config.DB)
}

// NewDatabaseRepositoryWithDB creates a database connection repository bound to the given handle.
func NewDatabaseRepositoryWithDB(db *gorm.DB) DatabaseRepository {
	return &databaseRepository{
		db: db,
	}
}

func (r *databaseRepository) GetByID(tx *gorm.DB, id uint) (*models.Database, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var database models.Database
	if err := db.Where("id = ?", id).First(&database).Error; err != nil {
		return nil, err
	}
	return &database, nil
}

func (r *databaseRepository) Create(tx *gorm.DB, database *models.Database) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Create(database).Error
}

func (r *databaseRepository) CountByName(tx *gorm.DB, name string) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var count int64
	if err := db.Model(&models.Database{}).Where("database_name = ?", name).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
