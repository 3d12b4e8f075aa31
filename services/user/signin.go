package user

import (
	"context"
	"errors"
	"time"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email/username or password"

// Login checks credentials and appends a new session.
func (s *DefaultUserService) Login(ctx context.Context, req LoginRequest, meta SessionMeta) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, utils.Unauthorized(invalidCredentials)
	}

	user, err := s.Repo.GetByLogin(ctx, req.Email)
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil, utils.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, utils.Internal("Authentication failed, please try again", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized(invalidCredentials)
	}

	device := req.Device
	if device == "" {
		device = meta.UserAgent
	}
	ip := req.IP
	if ip == "" {
		ip = meta.IP
	}
	session, token, err := newSession(user.ID, device, ip, req.Location)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddSession(ctx, user.ID, session); err != nil {
		return nil, utils.Internal("Failed to open session", err)
	}
	user.Sessions = append(user.Sessions, session)

	return &AuthResponse{User: user, Token: token}, nil
}

// Logout closes the caller's current session.
func (s *DefaultUserService) Logout(ctx context.Context, actor policy.Actor) error {
	if actor.ID == "" || actor.SessionID == "" {
		return nil
	}
	user, err := s.Repo.GetByID(ctx, actor.ID)
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return utils.Internal("Failed to log out", err)
	}
	if idx := user.FindSession(actor.SessionID); idx != -1 {
		utils.InvalidateAuth(ctx, user.Sessions[idx].TokenHash)
	}
	if err := s.Repo.RemoveSession(ctx, actor.ID, actor.SessionID); err != nil {
		return utils.Internal("Failed to log out", err)
	}
	return nil
}

// Authenticate validates the token signature and expiry and that its session
// still exists. Positive results are cached.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (*policy.Actor, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, utils.Unauthorized("Not authorized, token failed")
	}
	hash := utils.HashToken(token)

	if entry := utils.LookupAuth(ctx, hash); entry != nil && entry.UserID == claims.UserID && entry.SessionID == claims.SessionID {
		return &policy.Actor{
			ID:        entry.UserID,
			Name:      entry.Name,
			Role:      models.Role(entry.Role),
			Avatar:    entry.Avatar,
			SessionID: entry.SessionID,
		}, nil
	}

	user, err := s.Repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil, utils.Unauthorized("Not authorized, user not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to authenticate", err)
	}
	idx := user.FindSession(claims.SessionID)
	if idx == -1 || user.Sessions[idx].TokenHash != hash {
		return nil, utils.Unauthorized("Not authorized, session revoked")
	}

	actor := &policy.Actor{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		Avatar:    user.ProfilePicture,
		SessionID: claims.SessionID,
	}
	utils.CacheAuth(ctx, hash, utils.AuthCacheEntry{
		UserID:    actor.ID,
		SessionID: actor.SessionID,
		Name:      actor.Name,
		Role:      string(actor.Role),
		Avatar:    actor.Avatar,
	})
	return actor, nil
}

// newSession issues a token bound to a fresh session record.
func newSession(userID, device, ip, location string) (models.Session, string, error) {
	sessionID := uuid.New().String()
	token, err := utils.GenerateToken(userID, sessionID, utils.TokenTTL())
	if err != nil {
		utils.GetLogger().Error("Failed to sign token", zap.String("userId", userID), zap.Error(err))
		return models.Session{}, "", utils.Internal("Failed to create session", err)
	}
	if device == "" {
		device = "Unknown Device"
	}
	if ip == "" {
		ip = "Unknown"
	}
	if location == "" {
		location = "Unknown"
	}
	return models.Session{
		ID:         sessionID,
		Device:     device,
		IP:         ip,
		Location:   location,
		LastActive: time.Now(),
		TokenHash:  utils.HashToken(token),
	}, token, nil
}
