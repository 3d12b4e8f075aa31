package memory

import (
	"context"
	"fmt"
	"time"

	businessRepo "businessconnect/database/repository/business"
	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
)

var _ businessRepo.BusinessRepository = (*BusinessRepo)(nil)

type BusinessRepo struct {
	lockedMap[*models.Business]
}

func NewBusinessRepo() *BusinessRepo {
	return &BusinessRepo{lockedMap: newLockedMap[*models.Business]()}
}

func (r *BusinessRepo) pageNameTaken(id, key string) bool {
	for otherID, b := range r.docs {
		if otherID != id && b.PageNameKey == key {
			return true
		}
	}
	return false
}

func (r *BusinessRepo) Create(_ context.Context, business *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.NormalizePageName(business.PageName)
	if _, exists := r.docs[business.ID]; exists || r.pageNameTaken(business.ID, key) {
		return fmt.Errorf("failed to create business: %w", repoerr.ErrDuplicateKey)
	}
	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now
	business.Version = 1
	business.PageNameKey = key
	r.docs[business.ID] = cloneBusiness(business)
	return nil
}

func (r *BusinessRepo) GetByID(_ context.Context, id string) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("business with id %s: %w", id, repoerr.ErrNotFound)
	}
	return cloneBusiness(b), nil
}

func (r *BusinessRepo) GetByPageName(_ context.Context, pageName string) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := models.NormalizePageName(pageName)
	for _, b := range r.docs {
		if b.PageNameKey == key {
			return cloneBusiness(b), nil
		}
	}
	return nil, fmt.Errorf("business with page name %s: %w", pageName, repoerr.ErrNotFound)
}

func (r *BusinessRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Business{}
	for _, b := range sortedBusinesses(r.docs, func(b *models.Business) bool { return b.OwnerID == ownerID }) {
		out = append(out, *cloneBusiness(b))
	}
	return out, nil
}

func (r *BusinessRepo) ListPublic(_ context.Context, filter businessRepo.PublicFilter) ([]models.BusinessSummary, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := sortedBusinesses(r.docs, func(b *models.Business) bool {
		if filter.Category != "" && b.Category != filter.Category {
			return false
		}
		if filter.Query != "" && !containsFold(b.Name, filter.Query) {
			return false
		}
		return true
	})
	total := int64(len(matched))

	start := filter.Skip
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}

	summaries := []models.BusinessSummary{}
	for _, b := range matched[start:end] {
		summaries = append(summaries, cloneBusiness(b).Summary())
	}
	return summaries, total, nil
}

func (r *BusinessRepo) Update(_ context.Context, business *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.docs[business.ID]
	if !ok {
		return fmt.Errorf("business with id %s: %w", business.ID, repoerr.ErrNotFound)
	}
	if stored.Version != business.Version {
		return fmt.Errorf("business with id %s at version %d: %w", business.ID, business.Version, repoerr.ErrVersionConflict)
	}
	key := models.NormalizePageName(business.PageName)
	if r.pageNameTaken(business.ID, key) {
		return fmt.Errorf("failed to update business with id %s: %w", business.ID, repoerr.ErrDuplicateKey)
	}

	now := time.Now()
	business.PageNameKey = key
	business.Version = stored.Version + 1
	business.UpdatedAt = now

	updated := cloneBusiness(business)
	// Fields outside the versioned set keep their stored values.
	updated.OwnerID = stored.OwnerID
	updated.Rating = stored.Rating
	updated.RatingSum = stored.RatingSum
	updated.ReviewCount = stored.ReviewCount
	updated.CreatedAt = stored.CreatedAt
	r.docs[business.ID] = updated
	return nil
}

func (r *BusinessRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("business with id %s: %w", id, repoerr.ErrNotFound)
	}
	delete(r.docs, id)
	return nil
}

func (r *BusinessRepo) ApplyRating(_ context.Context, id string, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("business with id %s: %w", id, repoerr.ErrNotFound)
	}
	b.RatingSum += float64(rating)
	b.ReviewCount++
	b.Rating = models.RoundRating(b.RatingSum, b.ReviewCount)
	return nil
}
