package user

import (
	"context"
	"errors"
	"strings"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
	"businessconnect/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a user and opens their first session.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest, meta SessionMeta) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, utils.BadRequest("Name, email and password are required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, utils.BadRequest("Password must be at least 6 characters")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleAdmin {
		return nil, utils.BadRequest("Admin role cannot be self-assigned")
	}
	if !role.Valid() {
		return nil, utils.BadRequest("Invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("Failed to secure password", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Preferences:  models.DefaultPreferences(),
	}
	if err := models.ValidateStruct(user); err != nil {
		return nil, utils.BadRequest(err.Error())
	}

	session, token, err := newSession(user.ID, meta.UserAgent, meta.IP, "")
	if err != nil {
		return nil, err
	}
	user.Sessions = []models.Session{session}

	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, repoerr.ErrDuplicateKey) {
			return nil, utils.BadRequest("User with this email or username already exists")
		}
		return nil, utils.Internal("Failed to create user", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}
