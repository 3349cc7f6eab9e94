// Package users is the credential store: persisted user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/userhub/internal/server/models"
)

// Repository persists users. Only GetUserByLogin returns PasswordHash.
type Repository interface {
	// Create inserts the user and fills in ID and timestamps.
	// A username collision yields common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin looks a user up by exact username, hash included.
	// Returns common.ErrorNotFound when absent.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound when absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateProfilePicture stores url and returns the updated user.
	UpdateProfilePicture(ctx context.Context, id string, url string) (*models.User, error)
}
