// Package users implements the credential store over a single users
// table. Two backends exist: SQLite (default) and Postgres, selected by
// the storage package from the DSN.
package users

import (
	"context"

	"github.com/dmitrijs2005/chatmate/internal/server/models"
)

// Repository is the credential-store port used by the account service.
type Repository interface {
	// Create inserts a new account. It returns common.ErrUsernameTaken or
	// common.ErrEmailTaken when the corresponding unique constraint is hit.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the account or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the account or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// TouchLastLogin stamps the last_login column. An unknown username is
	// a silent no-op, not an error, so the call never leaks existence.
	TouchLastLogin(ctx context.Context, username string) error

	// UpdatePersona stores new assistant preferences for the account.
	UpdatePersona(ctx context.Context, username, gender, assistantName, assistantGender string) error
}
