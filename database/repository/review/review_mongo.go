package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.DB().Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := repoerr.NewContext(context.Background(), repoerr.ScanTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One review per user per business.
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", repoerr.Translate(err))
	}
	return nil
}

// ListByBusiness returns the reviews for a business sorted newest first.
func (r *MongoReviewRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Review, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// DeleteByBusiness removes every review belonging to a business.
func (r *MongoReviewRepo) DeleteByBusiness(ctx context.Context, businessID string) (int64, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews for business %s: %w", businessID, err)
	}
	return result.DeletedCount, nil
}
