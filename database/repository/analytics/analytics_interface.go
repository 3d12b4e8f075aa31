package analyticsRepo

import (
	"context"

	"businessconnect/models"
)

// Counter names an analytics field that can be incremented.
type Counter string

const (
	CounterProfileViews Counter = "profileViews"
	CounterInquiries    Counter = "inquiries"
)

// AnalyticsRepository defines methods for per-business analytics counters.
type AnalyticsRepository interface {
	// Create inserts the zeroed counter record for a new business.
	Create(ctx context.Context, businessID string) error
	// Increment atomically adds one to counter, creating the record if needed.
	Increment(ctx context.Context, businessID string, counter Counter) error
	// Get returns the counters of one business.
	Get(ctx context.Context, businessID string) (*models.Analytics, error)
	// ListByBusinessIDs returns the counters for every listed business that has a record.
	ListByBusinessIDs(ctx context.Context, businessIDs []string) ([]models.Analytics, error)
	// Delete removes a business's counter record. A missing record is not an error.
	Delete(ctx context.Context, businessID string) error
}
