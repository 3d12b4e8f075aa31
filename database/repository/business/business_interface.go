package businessRepo

import (
	"context"

	"businessconnect/models"
)

// BusinessRepository defines methods for business data access.
type BusinessRepository interface {
	// Create inserts a business. A taken page name returns repoerr.ErrDuplicateKey.
	Create(ctx context.Context, business *models.Business) error
	// GetByID retrieves a business by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Business, error)
	// GetByPageName retrieves a business by page name, ignoring case.
	GetByPageName(ctx context.Context, pageName string) (*models.Business, error)
	// ListByOwner returns every business owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Business, error)
	// ListPublic returns one page of the public catalog and the total match count.
	ListPublic(ctx context.Context, filter PublicFilter) ([]models.BusinessSummary, int64, error)
	// Update persists the catalog fields when business.Version still matches the
	// stored version, and bumps the version. A stale version returns
	// repoerr.ErrVersionConflict.
	Update(ctx context.Context, business *models.Business) error
	// Delete removes a business by its ID.
	Delete(ctx context.Context, id string) error
	// ApplyRating folds one review rating into the stored rating aggregate.
	ApplyRating(ctx context.Context, id string, rating int) error
}

// PublicFilter narrows the public catalog. Zero values mean "no constraint".
type PublicFilter struct {
	Category string // Exact category match.
	Query    string // Case-insensitive substring of the business name.
	Skip     int64
	Limit    int64
}
