package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sshtunnelapi/pkg/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global GORM database instance used throughout the application.
var DB *gorm.DB

// ConnectDB establishes the GORM connection for the configured driver.
func ConnectDB() error {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if logger.GetLevel() == logger.DEBUG {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var dialector gorm.Dialector
	switch Cfg.DBDriver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(Cfg.SQLitePath), 0755); err != nil {
			return fmt.Errorf("cannot create sqlite directory: %w", err)
		}
		logger.Infof("Opening sqlite database %s", Cfg.SQLitePath)
		dialector = sqlite.Open(Cfg.SQLitePath)
	case "mysql", "":
		logger.Infof("Connecting to database %s@%s:%d/%s", Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName)
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			Cfg.DBUser,
			Cfg.DBPass,
			Cfg.DBHost,
			Cfg.DBPort,
			Cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", Cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		logger.Errorf("GORM connection failed: %v", err)
		return err
	}
	logger.Infof("GORM connected successfully using %s driver", Cfg.DBDriver)

	DB = db
	return nil
}
