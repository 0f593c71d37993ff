package sshtunnel

import (
	"context"
	"errors"
	"fmt"

	"sshtunnelapi/models"
	"sshtunnelapi/pkg/logger"
	"sshtunnelapi/repository"
	"sshtunnelapi/services/dto"

	"gorm.io/gorm"
)

// SSHTunnelService provides business logic for SSH tunnel records.
// Tunnels are addressed by the id of the database that owns them.
type SSHTunnelService interface {
	// Get returns the tunnel of a database. Returns ErrNotFound if it has none.
	Get(ctx context.Context, databaseID uint) (*models.SSHTunnel, error)

	// Create attaches a new tunnel to a database.
	// Returns ErrNotFound if the database does not exist and ErrAlreadyExists if it already has a tunnel.
	Create(ctx context.Context, databaseID uint, patch dto.SSHTunnelPatch) (*models.SSHTunnel, error)

	// Update applies a partial update to an existing tunnel.
	// Nothing is persisted when validation fails; the validation error is returned unchanged.
	Update(ctx context.Context, databaseID uint, patch dto.SSHTunnelPatch) (*models.SSHTunnel, error)
}

type sshTunnelService struct {
	baseRepo      repository.BaseRepository
	databaseRepo  repository.DatabaseRepository
	sshTunnelRepo repository.SSHTunnelRepository
}

// NewSSHTunnelService creates a new SSH tunnel service instance.
func NewSSHTunnelService() SSHTunnelService {
	return &sshTunnelService{
		baseRepo:      repository.NewBaseRepository(),
		databaseRepo:  repository.NewDatabaseRepository(),
		sshTunnelRepo: repository.NewSSHTunnelRepository(),
	}
}

// NewSSHTunnelServiceWithDeps creates a service instance with injected dependencies.
func NewSSHTunnelServiceWithDeps(
	baseRepo repository.BaseRepository,
	databaseRepo repository.DatabaseRepository,
	sshTunnelRepo repository.SSHTunnelRepository,
) SSHTunnelService {
	return &sshTunnelService{
		baseRepo:      baseRepo,
		databaseRepo:  databaseRepo,
		sshTunnelRepo: sshTunnelRepo,
	}
}

func (s *sshTunnelService) Get(ctx context.Context, databaseID uint) (*models.SSHTunnel, error) {
	tunnel, err := s.sshTunnelRepo.GetByDatabaseID(s.baseRepo.Session(ctx), databaseID)
	if err != nil {
		return nil, notFound("ssh tunnel for database", databaseID, err)
	}
	return tunnel, nil
}

func (s *sshTunnelService) Create(ctx context.Context, databaseID uint, patch dto.SSHTunnelPatch) (*models.SSHTunnel, error) {
	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("cannot begin transaction: %w", tx.Error)
	}
	tx = tx.WithContext(ctx)

	database, err := s.databaseRepo.GetByID(tx, databaseID)
	if err != nil {
		tx.Rollback()
		return nil, notFound("database", databaseID, err)
	}

	count, err := s.sshTunnelRepo.CountByDatabaseID(tx, databaseID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cannot count ssh tunnels for database id=%d: %w", databaseID, err)
	}
	if count > 0 {
		tx.Rollback()
		return nil, fmt.Errorf("database id=%d: %w", databaseID, ErrAlreadyExists)
	}

	tunnel, err := Validate(models.SSHTunnel{DatabaseID: databaseID}, patch, database.SQLAlchemyURI)
	if err != nil {
		tx.Rollback()
		logValidationFailure("create", databaseID, err)
		return nil, err
	}

	if err := s.sshTunnelRepo.Create(tx, &tunnel); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cannot create ssh tunnel for database id=%d: %w", databaseID, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	logger.Infof("Created ssh tunnel id=%d for database id=%d (%s:%d)", tunnel.ID, databaseID, tunnel.ServerAddress, *tunnel.ServerPort)
	return &tunnel, nil
}

func (s *sshTunnelService) Update(ctx context.Context, databaseID uint, patch dto.SSHTunnelPatch) (*models.SSHTunnel, error) {
	tx := s.baseRepo.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("cannot begin transaction: %w", tx.Error)
	}
	tx = tx.WithContext(ctx)

	existing, err := s.sshTunnelRepo.GetByDatabaseID(tx, databaseID)
	if err != nil {
		tx.Rollback()
		return nil, notFound("ssh tunnel for database", databaseID, err)
	}

	database, err := s.databaseRepo.GetByID(tx, databaseID)
	if err != nil {
		tx.Rollback()
		return nil, notFound("database", databaseID, err)
	}

	tunnel, err := Validate(*existing, patch, database.SQLAlchemyURI)
	if err != nil {
		tx.Rollback()
		logValidationFailure("update", databaseID, err)
		return nil, err
	}

	if err := s.sshTunnelRepo.Save(tx, &tunnel); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cannot save ssh tunnel id=%d: %w", tunnel.ID, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	logger.Infof("Updated ssh tunnel id=%d for database id=%d (%s:%d)", tunnel.ID, databaseID, tunnel.ServerAddress, *tunnel.ServerPort)
	return &tunnel, nil
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound and passes other errors through with context.
func notFound(what string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s id=%d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("cannot load %s id=%d: %w", what, id, err)
}

func logValidationFailure(op string, databaseID uint, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		logger.Warnf("SSH tunnel %s rejected for database id=%d: %v (%s)", op, databaseID, err, verr.Detail())
		return
	}
	logger.Warnf("SSH tunnel %s rejected for database id=%d: %v", op, databaseID, err)
}
