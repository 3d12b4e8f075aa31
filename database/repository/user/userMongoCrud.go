package userRepo

import (
	"context"
	"fmt"
	"time"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Sessions == nil {
		user.Sessions = []models.Session{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", repoerr.Translate(err))
	}
	return nil
}

// UpdateProfile sets the editable profile fields of an existing user.
func (r *MongoUserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	user.UpdatedAt = time.Now()
	set := bson.M{
		"name":           user.Name,
		"email":          user.Email,
		"phone":          user.Phone,
		"location":       user.Location,
		"website":        user.Website,
		"bio":            user.Bio,
		"profilePicture": user.ProfilePicture,
		"coverImage":     user.CoverImage,
		"preferences":    user.Preferences,
		"updatedAt":      user.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if user.Username == "" {
		update["$unset"] = bson.M{"username": ""}
	} else {
		set["username"] = user.Username
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, repoerr.Translate(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", user.ID, repoerr.ErrNotFound)
	}
	return nil
}

// AddSession pushes a session onto the user's session list.
func (r *MongoUserRepo) AddSession(ctx context.Context, userID string, session models.Session) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"sessions": session},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to add session for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", userID, repoerr.ErrNotFound)
	}
	return nil
}

// RemoveSession pulls a session out of the user's session list.
func (r *MongoUserRepo) RemoveSession(ctx context.Context, userID, sessionID string) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	update := bson.M{"$pull": bson.M{"sessions": bson.M{"id": sessionID}}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to remove session %s for user %s: %w", sessionID, userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", userID, repoerr.ErrNotFound)
	}
	return nil
}
