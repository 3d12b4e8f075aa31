package user

import (
	"context"

	userRepo "businessconnect/database/repository/user"
	"businessconnect/models"
	"businessconnect/services/activity"
	"businessconnect/services/policy"
)

type UserService interface {
	// Registration and authentication
	Register(ctx context.Context, req RegisterRequest, meta SessionMeta) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest, meta SessionMeta) (*AuthResponse, error)
	Logout(ctx context.Context, actor policy.Actor) error
	// Authenticate resolves a session token to its actor.
	Authenticate(ctx context.Context, token string) (*policy.Actor, error)

	// Profile
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, actor policy.Actor, req UpdateProfileRequest) (*models.User, error)

	// Sessions and activity feed
	ListSessions(ctx context.Context, actor policy.Actor) ([]SessionView, error)
	RevokeSession(ctx context.Context, actor policy.Actor, sessionID string) error
	Activities(ctx context.Context, actor policy.Actor) ([]models.Activity, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Activity activity.ActivityService
}

func NewUserService(repo userRepo.UserRepository, activitySvc activity.ActivityService) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Activity: activitySvc}
}
