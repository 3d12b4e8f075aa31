package activity

import (
	"context"
	"time"

	activityRepo "businessconnect/database/repository/activity"
	"businessconnect/models"
	"businessconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecentLimit is the size of the user activity feed.
const RecentLimit = 10

type ActivityService interface {
	// Record appends an entry. Failures are logged, never returned.
	Record(ctx context.Context, userID string, kind models.ActivityType, description string, entity *models.EntityRef)
	// Recent returns the newest entries for a user.
	Recent(ctx context.Context, userID string) ([]models.Activity, error)
}

// DefaultActivityService is the production implementation.
type DefaultActivityService struct {
	Repo activityRepo.ActivityRepository
}

func NewActivityService(repo activityRepo.ActivityRepository) *DefaultActivityService {
	return &DefaultActivityService{Repo: repo}
}

func (s *DefaultActivityService) Record(ctx context.Context, userID string, kind models.ActivityType, description string, entity *models.EntityRef) {
	logger := utils.GetLogger()

	if err := entity.Validate(); err != nil {
		logger.Error("Rejected activity with invalid entity reference",
			zap.String("userId", userID), zap.String("type", string(kind)), zap.Error(err))
		entity = nil
	}

	entry := &models.Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        kind,
		Description: description,
		Entity:      entity,
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		logger.Error("Failed to record activity",
			zap.String("userId", userID), zap.String("type", string(kind)), zap.Error(err))
	}
}

func (s *DefaultActivityService) Recent(ctx context.Context, userID string) ([]models.Activity, error) {
	activities, err := s.Repo.ListRecent(ctx, userID, RecentLimit)
	if err != nil {
		return nil, utils.Internal("Failed to load activities", err)
	}
	return activities, nil
}
