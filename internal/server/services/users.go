// Package services contains server-side business logic. UserService is the
// user directory: registration, lookups and profile picture updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/logging"
	"github.com/dmitrijs2005/userhub/internal/server/media"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/dmitrijs2005/userhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PasswordHasher is satisfied by auth.BcryptHasher.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, hash string) (bool, error)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	uploader    media.Uploader
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher,
	uploader media.Uploader, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		uploader:    uploader,
		logger:      logger,
	}
}

// FindByUsername does an exact, case-sensitive lookup. The returned user
// carries PasswordHash. A missing user is (nil, false, nil).
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}
	return user, true, nil
}

// FindByID fails with ErrInvalidIdentifier for a malformed id and with
// ErrorNotFound when no such user exists.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrInvalidIdentifier
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}
	return user.WithoutPasswordHash(), nil
}

// Create registers a user. The username is checked up front and again by
// the unique index; both paths yield ErrDuplicateUsername.
func (s *UserService) Create(ctx context.Context, username, password string) (*models.User, error) {
	_, exists, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "username", user.UserName)

	return user.WithoutPasswordHash(), nil
}

// UpdateProfilePicture uploads data and stores the resulting URL on the user.
// Nothing is written unless the upload succeeded. A failed write after a
// successful upload leaves the remote object in place.
func (s *UserService) UpdateProfilePicture(ctx context.Context, userID string, data []byte, contentType string) (*models.User, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	res, err := s.uploader.Upload(ctx, data, contentType, common.ProfilePicturesFolder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}
	if res == nil || res.Err != nil || res.SecureURL == "" {
		var cause error = errors.New("empty result")
		if res != nil && res.Err != nil {
			cause = res.Err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrUploadFailed, cause)
	}

	user, err := s.repomanager.Users(s.db).UpdateProfilePicture(ctx, userID, res.SecureURL)
	if err != nil {
		s.logger.Error(ctx, "profile picture uploaded but not saved",
			"user_id", userID, "url", res.SecureURL, "error", err)
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}

	return user.WithoutPasswordHash(), nil
}
