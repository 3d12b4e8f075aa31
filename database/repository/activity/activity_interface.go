package activityRepo

import (
	"context"

	"businessconnect/models"
)

// ActivityRepository is the append-only activity log.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	// ListRecent returns at most limit entries for userID, newest first.
	ListRecent(ctx context.Context, userID string, limit int64) ([]models.Activity, error)
}
