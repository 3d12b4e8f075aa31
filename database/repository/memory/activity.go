package memory

import (
	"context"
	"sync"
	"time"

	activityRepo "businessconnect/database/repository/activity"
	"businessconnect/models"
)

var _ activityRepo.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo keeps entries in insertion order, which is also creation order.
type ActivityRepo struct {
	mu      sync.RWMutex
	entries []models.Activity
}

func NewActivityRepo() *ActivityRepo {
	return &ActivityRepo{}
}

func (r *ActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *activity)
	return nil
}

func (r *ActivityRepo) ListRecent(_ context.Context, userID string, limit int64) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Activity{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// All returns every entry in insertion order.
func (r *ActivityRepo) All() []models.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Activity, len(r.entries))
	copy(out, r.entries)
	return out
}
