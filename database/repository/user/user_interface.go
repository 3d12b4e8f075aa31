package userRepo

import (
	"context"

	"businessconnect/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user. Email and username collisions return repoerr.ErrDuplicateKey.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByLogin retrieves a user whose email or username equals login.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	// GetByIDs retrieves every user whose ID is in ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// UpdateProfile overwrites the editable profile fields.
	UpdateProfile(ctx context.Context, user *models.User) error
	// AddSession appends a session to the user's session list.
	AddSession(ctx context.Context, userID string, session models.Session) error
	// RemoveSession drops the session with the given ID.
	RemoveSession(ctx context.Context, userID, sessionID string) error
}
