package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
	"businessconnect/services/policy"
	"businessconnect/utils"
)

// GetProfile returns a user's profile.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load user", err)
	}
	return user, nil
}

// UpdateProfile applies the provided profile fields and records the change.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, actor policy.Actor, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.BadRequest("name cannot be empty")
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, utils.BadRequest("email cannot be empty")
		}
		user.Email = email
	}
	if req.Username != nil {
		user.Username = strings.ToLower(strings.TrimSpace(*req.Username))
	}

	optional := []struct {
		value *string
		dst   *string
	}{
		{req.Phone, &user.Phone},
		{req.Location, &user.Location},
		{req.Website, &user.Website},
		{req.Bio, &user.Bio},
		{req.ProfilePicture, &user.ProfilePicture},
		{req.CoverImage, &user.CoverImage},
	}
	for _, f := range optional {
		if f.value != nil {
			*f.dst = strings.TrimSpace(*f.value)
		}
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := models.ValidateStruct(user); err != nil {
		return nil, utils.BadRequest(err.Error())
	}

	if err := s.Repo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repoerr.ErrDuplicateKey) {
			return nil, utils.BadRequest("Email or username is already in use")
		}
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, utils.Internal("Failed to update profile", err)
	}

	// Cached identities carry the display name and avatar.
	hashes := make([]string, 0, len(user.Sessions))
	for _, session := range user.Sessions {
		hashes = append(hashes, session.TokenHash)
	}
	utils.InvalidateAuth(ctx, hashes...)

	s.Activity.Record(ctx, user.ID, models.ActivityProfileUpdate,
		fmt.Sprintf("%s updated their profile", user.Name), nil)
	return user, nil
}

// Activities returns the caller's most recent activity entries.
func (s *DefaultUserService) Activities(ctx context.Context, actor policy.Actor) ([]models.Activity, error) {
	return s.Activity.Recent(ctx, actor.ID)
}
