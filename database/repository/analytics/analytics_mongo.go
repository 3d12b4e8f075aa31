package analyticsRepo

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

// MongoAnalyticsRepo implements AnalyticsRepository using MongoDB.
type MongoAnalyticsRepo struct {
	coll *mongo.Collection
}

// NewMongoAnalyticsRepo creates a new instance of AnalyticsRepository using MongoDB.
func NewMongoAnalyticsRepo() AnalyticsRepository {
	coll := database.DB().Collection("analytics")
	repo := &MongoAnalyticsRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create analytics indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAnalyticsRepo) ensureIndexes() error {
	ctx, cancel := repoerr.NewContext(context.Background(), repoerr.ScanTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "businessId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create upserts a zeroed record so a retry after a partial failure is harmless.
func (r *MongoAnalyticsRepo) Create(ctx context.Context, businessID string) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"businessId":   businessID,
		"profileViews": int64(0),
		"inquiries":    int64(0),
		"lastUpdated":  time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"businessId": businessID}, update, opts); err != nil {
		return fmt.Errorf("failed to create analytics for business %s: %w", businessID, err)
	}
	return nil
}

// Increment is a single $inc upsert, so concurrent readers never lose a count.
func (r *MongoAnalyticsRepo) Increment(ctx context.Context, businessID string, counter Counter) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	switch counter {
	case CounterProfileViews, CounterInquiries:
	default:
		return fmt.Errorf("unknown analytics counter %q", counter)
	}

	update := bson.M{
		"$inc": bson.M{string(counter): int64(1)},
		"$set": bson.M{"lastUpdated": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"businessId": businessID}, update, opts); err != nil {
		return fmt.Errorf("failed to increment %s for business %s: %w", counter, businessID, err)
	}
	return nil
}

// Get returns the counters of one business.
func (r *MongoAnalyticsRepo) Get(ctx context.Context, businessID string) (*models.Analytics, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	var a models.Analytics
	if err := r.coll.FindOne(ctx, bson.M{"businessId": businessID}).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to fetch analytics for business %s: %w", businessID, repoerr.Translate(err))
	}
	return &a, nil
}

// ListByBusinessIDs returns the counter records for the given businesses.
func (r *MongoAnalyticsRepo) ListByBusinessIDs(ctx context.Context, businessIDs []string) ([]models.Analytics, error) {
	if len(businessIDs) == 0 {
		return []models.Analytics{}, nil
	}
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"businessId": bson.M{"$in": businessIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve analytics: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Analytics{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode analytics: %w", err)
	}
	return records, nil
}

// Delete removes the counter record of a business.
func (r *MongoAnalyticsRepo) Delete(ctx context.Context, businessID string) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"businessId": businessID}); err != nil {
		return fmt.Errorf("failed to delete analytics for business %s: %w", businessID, err)
	}
	return nil
}
