package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	analyticsRepo "businessconnect/database/repository/analytics"
	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
	"businessconnect/utils"

	"go.uber.org/zap"
)

type AnalyticsService interface {
	// Create initialises the zeroed counters of a new business.
	Create(ctx context.Context, businessID string) error
	// RecordView counts one profile view when the view policy and dedup window allow it.
	RecordView(ctx context.Context, businessID, viewer string, source ViewSource)
	// RecordInquiry counts one inquiry.
	RecordInquiry(ctx context.Context, businessID string) error
	// Get returns the counters of one business; a missing record reads as zero.
	Get(ctx context.Context, businessID string) (*models.Analytics, error)
	// Totals sums views and inquiries across businesses.
	Totals(ctx context.Context, businessIDs []string) (views, inquiries int64, err error)
	// Delete removes a business's counters.
	Delete(ctx context.Context, businessID string) error
}

// DefaultAnalyticsService is the production implementation.
type DefaultAnalyticsService struct {
	Repo        analyticsRepo.AnalyticsRepository
	Policy      ViewPolicy
	DedupWindow time.Duration
	Dedup       Deduper
}

func NewAnalyticsService(repo analyticsRepo.AnalyticsRepository, policy ViewPolicy, window time.Duration, dedup Deduper) *DefaultAnalyticsService {
	if policy == "" {
		policy = ViewPolicyAllReads
	}
	return &DefaultAnalyticsService{Repo: repo, Policy: policy, DedupWindow: window, Dedup: dedup}
}

func (s *DefaultAnalyticsService) Create(ctx context.Context, businessID string) error {
	if err := s.Repo.Create(ctx, businessID); err != nil {
		return fmt.Errorf("failed to create analytics: %w", err)
	}
	return nil
}

// RecordView never fails the read that triggered it; errors are logged.
func (s *DefaultAnalyticsService) RecordView(ctx context.Context, businessID, viewer string, source ViewSource) {
	if !s.Policy.Counts(source) {
		return
	}
	logger := utils.GetLogger()

	if s.DedupWindow > 0 && s.Dedup != nil && viewer != "" {
		first, err := s.Dedup.FirstView(ctx, businessID+":"+viewer, s.DedupWindow)
		if err != nil {
			// Count the view rather than drop it when the dedup store is down.
			logger.Warn("View dedup check failed", zap.String("businessId", businessID), zap.Error(err))
		} else if !first {
			return
		}
	}

	if err := s.Repo.Increment(ctx, businessID, analyticsRepo.CounterProfileViews); err != nil {
		logger.Error("Failed to record profile view", zap.String("businessId", businessID), zap.Error(err))
		return
	}
	utils.ProfileViews.WithLabelValues(string(source)).Inc()
}

func (s *DefaultAnalyticsService) RecordInquiry(ctx context.Context, businessID string) error {
	if err := s.Repo.Increment(ctx, businessID, analyticsRepo.CounterInquiries); err != nil {
		return utils.Internal("Failed to record inquiry", err)
	}
	return nil
}

func (s *DefaultAnalyticsService) Get(ctx context.Context, businessID string) (*models.Analytics, error) {
	a, err := s.Repo.Get(ctx, businessID)
	if errors.Is(err, repoerr.ErrNotFound) {
		return &models.Analytics{BusinessID: businessID}, nil
	}
	if err != nil {
		return nil, utils.Internal("Failed to load analytics", err)
	}
	return a, nil
}

func (s *DefaultAnalyticsService) Totals(ctx context.Context, businessIDs []string) (int64, int64, error) {
	records, err := s.Repo.ListByBusinessIDs(ctx, businessIDs)
	if err != nil {
		return 0, 0, utils.Internal("Failed to load analytics", err)
	}
	var views, inquiries int64
	for _, a := range records {
		views += a.ProfileViews
		inquiries += a.Inquiries
	}
	return views, inquiries, nil
}

func (s *DefaultAnalyticsService) Delete(ctx context.Context, businessID string) error {
	if err := s.Repo.Delete(ctx, businessID); err != nil {
		return fmt.Errorf("failed to delete analytics: %w", err)
	}
	return nil
}
