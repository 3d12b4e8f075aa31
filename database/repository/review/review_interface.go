package reviewRepo

import (
	"context"

	"businessconnect/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review. A second review by the same user on the same
	// business returns repoerr.ErrDuplicateKey.
	Create(ctx context.Context, review *models.Review) error
	// ListByBusiness returns a business's reviews, newest first.
	ListByBusiness(ctx context.Context, businessID string) ([]models.Review, error)
	// DeleteByBusiness removes every review of a business and reports how many went.
	DeleteByBusiness(ctx context.Context, businessID string) (int64, error)
}
