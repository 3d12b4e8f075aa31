package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	businessRepo "businessconnect/database/repository/business"
	"businessconnect/database/repository/repoerr"
	reviewRepo "businessconnect/database/repository/review"
	userRepo "businessconnect/database/repository/user"
	"businessconnect/models"
	"businessconnect/services/activity"
	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateReviewRequest is the body of POST /api/businesses/:id/reviews.
type CreateReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

type ReviewService interface {
	Create(ctx context.Context, actor policy.Actor, businessID string, req CreateReviewRequest) (*models.Review, error)
	// List returns a business's reviews newest first, with author names read from the user record.
	List(ctx context.Context, businessID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo       reviewRepo.ReviewRepository
	Businesses businessRepo.BusinessRepository
	Users      userRepo.UserRepository
	Activity   activity.ActivityService
}

func NewReviewService(
	repo reviewRepo.ReviewRepository,
	businesses businessRepo.BusinessRepository,
	users userRepo.UserRepository,
	activitySvc activity.ActivityService,
) *DefaultReviewService {
	return &DefaultReviewService{Repo: repo, Businesses: businesses, Users: users, Activity: activitySvc}
}

func (s *DefaultReviewService) Create(ctx context.Context, actor policy.Actor, businessID string, req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 || req.Rating != math.Trunc(req.Rating) {
		return nil, utils.BadRequest("Rating is required and must be a whole number between 1 and 5")
	}
	rating := int(req.Rating)

	b, err := s.business(ctx, businessID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BusinessID: b.ID,
		UserID:     actor.ID,
		UserName:   actor.Name,
		UserAvatar: actor.Avatar,
		Rating:     rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		if errors.Is(err, repoerr.ErrDuplicateKey) {
			return nil, utils.BadRequest("You have already reviewed this business")
		}
		return nil, utils.Internal("Failed to create review", err)
	}

	if err := s.Businesses.ApplyRating(ctx, b.ID, rating); err != nil {
		utils.GetLogger().Error("Review stored but rating not applied",
			zap.String("businessId", b.ID), zap.String("reviewId", review.ID), zap.Error(err))
		return nil, utils.Internal("Failed to update business rating", err)
	}
	utils.ReviewsCreated.Inc()

	s.Activity.Record(ctx, actor.ID, models.ActivityReviewCreate,
		fmt.Sprintf("%s left a %d-star review for business: %s", actor.Name, rating, b.Name),
		models.BusinessRef(b.ID))
	return review, nil
}

func (s *DefaultReviewService) List(ctx context.Context, businessID string) ([]models.Review, error) {
	b, err := s.business(ctx, businessID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Repo.ListByBusiness(ctx, b.ID)
	if err != nil {
		return nil, utils.Internal("Failed to load reviews", err)
	}
	if len(reviews) == 0 {
		return reviews, nil
	}

	ids := make([]string, 0, len(reviews))
	seen := map[string]bool{}
	for _, r := range reviews {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		// Stored names are a usable fallback.
		utils.GetLogger().Warn("Failed to join review authors", zap.String("businessId", b.ID), zap.Error(err))
		return reviews, nil
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range reviews {
		if u, ok := byID[reviews[i].UserID]; ok {
			reviews[i].UserName = u.Name
			if u.ProfilePicture != "" {
				reviews[i].UserAvatar = u.ProfilePicture
			}
		}
	}
	return reviews, nil
}

func (s *DefaultReviewService) business(ctx context.Context, id string) (*models.Business, error) {
	b, err := s.Businesses.GetByID(ctx, id)
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil, utils.NotFound("Business not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load business", err)
	}
	return b, nil
}
