package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"sshtunnelapi/models"
	"sshtunnelapi/pkg/logger"
	"sshtunnelapi/repository"
)

// ErrDuplicateDatabase is returned when a database with the same name is already registered.
var ErrDuplicateDatabase = errors.New("database already exists")

// ErrInvalidURI is returned when a connection string has no scheme or cannot be parsed.
var ErrInvalidURI = errors.New("invalid sqlalchemy_uri")

// DatabaseService provides business logic for database connection records.
type DatabaseService interface {
	Create(ctx context.Context, data models.Database) (*models.Database, error)
}

type databaseService struct {
	baseRepo     repository.BaseRepository
	databaseRepo repository.DatabaseRepository
}

// NewDatabaseService creates a new database connection service instance.
func NewDatabaseService() DatabaseService {
	return &databaseService{
		baseRepo:     repository.NewBaseRepository(),
		databaseRepo: repository.NewDatabaseRepository(),
	}
}

// NewDatabaseServiceWithDeps creates a service instance with injected dependencies.
func NewDatabaseServiceWithDeps(baseRepo repository.BaseRepository, databaseRepo repository.DatabaseRepository) DatabaseService {
	return &databaseService{
		baseRepo:     baseRepo,
		databaseRepo: databaseRepo,
	}
}

func (s *databaseService) Create(ctx context.Context, data models.Database) (*models.Database, error) {
	u, err := url.Parse(data.SQLAlchemyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: missing scheme", ErrInvalidURI)
	}

	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("cannot begin transaction: %w", tx.Error)
	}
	tx = tx.WithContext(ctx)

	count, err := s.databaseRepo.CountByName(tx, data.DatabaseName)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cannot count databases named %s: %w", data.DatabaseName, err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDatabase, data.DatabaseName)
	}

	data.ID = 0
	if err := s.databaseRepo.Create(tx, &data); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cannot create database %s: %w", data.DatabaseName, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	logger.Infof("Registered database %s with ID: %d (backend %s)", data.DatabaseName, data.ID, u.Scheme)
	return &data, nil
}
