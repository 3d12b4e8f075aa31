package userRepo

import (
	"context"
	"fmt"
	"strings"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, repoerr.Translate(err))
	}
	return &user, nil
}

// GetByLogin matches login against email or username. Both are stored lowercased.
func (r *MongoUserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	login = strings.ToLower(strings.TrimSpace(login))
	filter := bson.M{"$or": bson.A{
		bson.M{"email": login},
		bson.M{"username": login},
	}}

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", login, repoerr.Translate(err))
	}
	return &user, nil
}

// GetByIDs retrieves all users whose ID is in ids.
func (r *MongoUserRepo) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
