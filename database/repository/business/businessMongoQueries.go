package businessRepo

import (
	"context"
	"fmt"
	"regexp"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// summaryProjection limits public catalog reads to the fields a listing card needs.
var summaryProjection = bson.M{
	"id": 1, "name": 1, "description": 1, "icon": 1, "customIcon": 1, "theme": 1,
	"location": 1, "pageName": 1, "services": 1, "rating": 1, "reviewCount": 1,
	"images": 1, "isOpen": 1, "category": 1,
}

// GetByID retrieves a business by its unique ID.
func (r *MongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	var business models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&business); err != nil {
		return nil, fmt.Errorf("failed to fetch business with id %s: %w", id, repoerr.Translate(err))
	}
	return &business, nil
}

// GetByPageName looks a business up through its normalised page name key.
func (r *MongoBusinessRepo) GetByPageName(ctx context.Context, pageName string) (*models.Business, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.SingleDocTimeout)
	defer cancel()

	key := models.NormalizePageName(pageName)
	var business models.Business
	if err := r.coll.FindOne(ctx, bson.M{"pageNameKey": key}).Decode(&business); err != nil {
		return nil, fmt.Errorf("failed to fetch business with page name %s: %w", pageName, repoerr.Translate(err))
	}
	return &business, nil
}

// ListByOwner returns all businesses owned by ownerID, oldest first.
func (r *MongoBusinessRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Business, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve businesses for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	businesses := []models.Business{}
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("failed to decode businesses: %w", err)
	}
	return businesses, nil
}

// ListPublic returns one page of business summaries matching filter.
func (r *MongoBusinessRepo) ListPublic(ctx context.Context, filter PublicFilter) ([]models.BusinessSummary, int64, error) {
	ctx, cancel := repoerr.NewContext(ctx, repoerr.ScanTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Query != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Query), "$options": "i"}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve businesses: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []models.BusinessSummary{}
	for cursor.Next(ctx) {
		var s models.BusinessSummary
		if err := cursor.Decode(&s); err != nil {
			return nil, 0, fmt.Errorf("failed to decode business summary: %w", err)
		}
		s.Normalize()
		summaries = append(summaries, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %w", err)
	}
	return summaries, total, nil
}
