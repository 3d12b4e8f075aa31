package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"businessconnect/database/repository/repoerr"
	reviewRepo "businessconnect/database/repository/review"
	"businessconnect/models"
)

var _ reviewRepo.ReviewRepository = (*ReviewRepo)(nil)

type ReviewRepo struct {
	lockedMap[models.Review]
}

func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{lockedMap: newLockedMap[models.Review]()}
}

func (r *ReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[review.ID]; exists {
		return fmt.Errorf("failed to create review: %w", repoerr.ErrDuplicateKey)
	}
	for _, other := range r.docs {
		if other.BusinessID == review.BusinessID && other.UserID == review.UserID {
			return fmt.Errorf("failed to create review: %w", repoerr.ErrDuplicateKey)
		}
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.docs[review.ID] = *review
	return nil
}

func (r *ReviewRepo) ListByBusiness(_ context.Context, businessID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := []models.Review{}
	for _, rv := range r.docs {
		if rv.BusinessID == businessID {
			reviews = append(reviews, rv)
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *ReviewRepo) DeleteByBusiness(_ context.Context, businessID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, rv := range r.docs {
		if rv.BusinessID == businessID {
			delete(r.docs, id)
			n++
		}
	}
	return n, nil
}
