package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"businessconnect/database/repository/repoerr"
	userRepo "businessconnect/database/repository/user"
	"businessconnect/models"
)

var _ userRepo.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	lockedMap[*models.User]
}

func NewUserRepo() *UserRepo {
	return &UserRepo{lockedMap: newLockedMap[*models.User]()}
}

// conflicts mirrors the unique email index and the sparse unique username index.
func (r *UserRepo) conflicts(u *models.User) bool {
	for id, other := range r.docs {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return true
		}
		if u.Username != "" && other.Username == u.Username {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[user.ID]; exists || r.conflicts(user) {
		return fmt.Errorf("failed to create user: %w", repoerr.ErrDuplicateKey)
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Sessions == nil {
		user.Sessions = []models.Session{}
	}
	r.docs[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s: %w", id, repoerr.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByLogin(_ context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	login = strings.ToLower(strings.TrimSpace(login))
	for _, u := range r.docs {
		if u.Email == login || (u.Username != "" && u.Username == login) {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", login, repoerr.ErrNotFound)
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []models.User{}
	for _, id := range ids {
		if u, ok := r.docs[id]; ok {
			users = append(users, *cloneUser(u))
		}
	}
	return users, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.docs[user.ID]
	if !ok {
		return fmt.Errorf("user with id %s: %w", user.ID, repoerr.ErrNotFound)
	}
	if r.conflicts(user) {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, repoerr.ErrDuplicateKey)
	}
	user.UpdatedAt = time.Now()
	updated := cloneUser(user)
	// Profile updates never touch credentials or sessions.
	updated.PasswordHash = stored.PasswordHash
	updated.Sessions = stored.Sessions
	updated.Role = stored.Role
	updated.CreatedAt = stored.CreatedAt
	r.docs[user.ID] = updated
	return nil
}

func (r *UserRepo) AddSession(_ context.Context, userID string, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.docs[userID]
	if !ok {
		return fmt.Errorf("user with id %s: %w", userID, repoerr.ErrNotFound)
	}
	u.Sessions = append(u.Sessions, session)
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepo) RemoveSession(_ context.Context, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.docs[userID]
	if !ok {
		return fmt.Errorf("user with id %s: %w", userID, repoerr.ErrNotFound)
	}
	kept := u.Sessions[:0]
	for _, s := range u.Sessions {
		if s.ID != sessionID {
			kept = append(kept, s)
		}
	}
	u.Sessions = kept
	return nil
}
