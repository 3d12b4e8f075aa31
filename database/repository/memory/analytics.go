package memory

import (
	"context"
	"fmt"
	"time"

	analyticsRepo "businessconnect/database/repository/analytics"
	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
)

var _ analyticsRepo.AnalyticsRepository = (*AnalyticsRepo)(nil)

type AnalyticsRepo struct {
	lockedMap[models.Analytics]
}

func NewAnalyticsRepo() *AnalyticsRepo {
	return &AnalyticsRepo{lockedMap: newLockedMap[models.Analytics]()}
}

func (r *AnalyticsRepo) Create(_ context.Context, businessID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[businessID]; !ok {
		r.docs[businessID] = models.Analytics{BusinessID: businessID, LastUpdated: time.Now()}
	}
	return nil
}

func (r *AnalyticsRepo) Increment(_ context.Context, businessID string, counter analyticsRepo.Counter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.docs[businessID]
	a.BusinessID = businessID
	switch counter {
	case analyticsRepo.CounterProfileViews:
		a.ProfileViews++
	case analyticsRepo.CounterInquiries:
		a.Inquiries++
	default:
		return fmt.Errorf("unknown analytics counter %q", counter)
	}
	a.LastUpdated = time.Now()
	r.docs[businessID] = a
	return nil
}

func (r *AnalyticsRepo) Get(_ context.Context, businessID string) (*models.Analytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.docs[businessID]
	if !ok {
		return nil, fmt.Errorf("analytics for business %s: %w", businessID, repoerr.ErrNotFound)
	}
	return &a, nil
}

func (r *AnalyticsRepo) ListByBusinessIDs(_ context.Context, businessIDs []string) ([]models.Analytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []models.Analytics{}
	for _, id := range businessIDs {
		if a, ok := r.docs[id]; ok {
			records = append(records, a)
		}
	}
	return records, nil
}

func (r *AnalyticsRepo) Delete(_ context.Context, businessID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.docs, businessID)
	return nil
}
