package activityRepo

import (
	"context"
	"fmt"
	"time"

	"businessconnect/database"
	"businessconnect/database/repository/repoerr"
	"businessconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo creates a new instance of ActivityRepository using MongoDB.
func NewMongoActivityRepo() ActivityRepository {
	coll := database.DB().Collection("activities")
	repo := &MongoActivityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create activity indexes: %v\n", err)
	}
	return repo
}

func (r *MongoActivityRepo) ensureIndexes() error {
	ctx, cancel := repoerr.NewContext(context.Background(), repoerr.ScanTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create appends an activity entry.
func (r *MongoActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries for a user.
func (r *MongoActivityRepo) ListRecent(ctx context.Context, userID string, limit int64) ([]models.Activity, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activities for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}
