package businessRepo

import (
	"context"
	"fmt"
	"time"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new business document at version 1.
func (r *MongoBusinessRepo) Create(ctx context.Context, business *models.Business) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now
	business.Version = 1
	business.PageNameKey = models.NormalizePageName(business.PageName)

	if _, err := r.coll.InsertOne(ctx, business); err != nil {
		return fmt.Errorf("failed to create business: %w", repoerr.Translate(err))
	}
	return nil
}

// Update writes the catalog fields guarded by the version the caller read.
// Rating counters are left alone so reviews never race with catalog edits.
func (r *MongoBusinessRepo) Update(ctx context.Context, business *models.Business) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	now := time.Now()
	business.PageNameKey = models.NormalizePageName(business.PageName)
	set := bson.M{
		"name":        business.Name,
		"icon":        business.Icon,
		"customIcon":  business.CustomIcon,
		"contact":     business.Contact,
		"location":    business.Location,
		"pageName":    business.PageName,
		"pageNameKey": business.PageNameKey,
		"theme":       business.Theme,
		"description": business.Description,
		"website":     business.Website,
		"category":    business.Category,
		"services":    business.Services,
		"products":    business.Products,
		"hours":       business.Hours,
		"images":      business.Images,
		"isOpen":      business.IsOpen,
		"updatedAt":   now,
	}
	filter := bson.M{"id": business.ID, "version": business.Version}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update business with id %s: %w", business.ID, repoerr.Translate(err))
	}
	if result.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": business.ID})
		if err != nil {
			return fmt.Errorf("failed to check business with id %s: %w", business.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("business with id %s: %w", business.ID, repoerr.ErrNotFound)
		}
		return fmt.Errorf("business with id %s at version %d: %w", business.ID, business.Version, repoerr.ErrVersionConflict)
	}
	business.Version++
	business.UpdatedAt = now
	return nil
}

// Delete removes a business document by its ID.
func (r *MongoBusinessRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete business with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("business with id %s: %w", id, repoerr.ErrNotFound)
	}
	return nil
}

// ApplyRating adds one rating to ratingSum, bumps reviewCount and stores the
// rounded mean, all in a single pipeline update.
func (r *MongoBusinessRepo) ApplyRating(ctx context.Context, id string, rating int) error {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "ratingSum", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$ratingSum", 0}}}, rating,
			}}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviewCount", 0}}}, 1,
			}}}},
		}}},
		// rating = floor(sum/count*10 + 0.5) / 10, half-up to one decimal.
		{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: bson.D{{Key: "$divide", Value: bson.A{
				bson.D{{Key: "$floor", Value: bson.D{{Key: "$add", Value: bson.A{
					bson.D{{Key: "$multiply", Value: bson.A{
						bson.D{{Key: "$divide", Value: bson.A{"$ratingSum", "$reviewCount"}}}, 10,
					}}}, 0.5,
				}}}}}, 10,
			}}}},
		}}},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to apply rating to business %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("business with id %s: %w", id, repoerr.ErrNotFound)
	}
	return nil
}
