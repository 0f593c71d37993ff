package bootstrap

import (
	"fmt"

	"sshtunnelapi/config"
	"sshtunnelapi/models"
	"sshtunnelapi/pkg/logger"

	"gorm.io/gorm"
)

// LoadData prepares the schema and reports the startup state.
func LoadData() error {
	logger.Infof("Starting bootstrap data loading...")

	if err := Migrate(config.DB); err != nil {
		logger.Errorf("Failed to migrate schema: %v", err)
		return err
	}

	logger.Infof("Bootstrap data loading completed successfully")
	return nil
}

// Migrate creates or updates the tables used by the service.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is nil")
	}
	if err := db.AutoMigrate(&models.Database{}, &models.SSHTunnel{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
