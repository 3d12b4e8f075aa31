package business

import (
	"context"
	"errors"

	businessRepo "businessconnect/database/repository/business"
	"businessconnect/database/repository/repoerr"
	reviewRepo "businessconnect/database/repository/review"
	"businessconnect/models"
	"businessconnect/services/activity"
	"businessconnect/services/analytics"
	"businessconnect/services/policy"
	"businessconnect/services/storage"
	"businessconnect/utils"

	"go.uber.org/zap"
)

// maxWriteRetries bounds how often a write is re-applied after losing a version race.
const maxWriteRetries = 3

type BusinessService interface {
	Create(ctx context.Context, actor policy.Actor, req CreateBusinessRequest) (*models.Business, error)
	// Get loads a business by ID, falling back to a case-insensitive page name.
	Get(ctx context.Context, idOrPageName, viewer string) (*models.Business, error)
	ListOwn(ctx context.Context, actor policy.Actor) ([]models.Business, error)
	ListPublic(ctx context.Context, query PublicQuery, viewer string) (*PublicListing, error)
	Update(ctx context.Context, actor policy.Actor, id string, req UpdateBusinessRequest) (*models.Business, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error

	AddProduct(ctx context.Context, actor policy.Actor, id string, req ProductRequest) (*models.Business, error)
	UpdateProduct(ctx context.Context, actor policy.Actor, id, productID string, req ProductRequest) (*models.Business, error)
	DeleteProduct(ctx context.Context, actor policy.Actor, id, productID, service string) (*models.Business, error)

	Stats(ctx context.Context, actor policy.Actor) (*models.BusinessStats, error)
	RecordInquiry(ctx context.Context, idOrPageName string) error
	UploadImage(ctx context.Context, actor policy.Actor, upload ImageUpload) (string, error)
}

// DefaultBusinessService is the production implementation.
type DefaultBusinessService struct {
	Repo      businessRepo.BusinessRepository
	Reviews   reviewRepo.ReviewRepository
	Analytics analytics.AnalyticsService
	Activity  activity.ActivityService
	Images    storage.ImageStore
}

func NewBusinessService(
	repo businessRepo.BusinessRepository,
	reviews reviewRepo.ReviewRepository,
	analyticsSvc analytics.AnalyticsService,
	activitySvc activity.ActivityService,
	images storage.ImageStore,
) *DefaultBusinessService {
	if images == nil {
		images = storage.Unconfigured()
	}
	return &DefaultBusinessService{
		Repo:      repo,
		Reviews:   reviews,
		Analytics: analyticsSvc,
		Activity:  activitySvc,
		Images:    images,
	}
}

type businessFilter = businessRepo.PublicFilter

// event is an activity entry produced by a mutation, recorded only once the write lands.
type event struct {
	kind        models.ActivityType
	description string
	entity      *models.EntityRef
}

// mutation edits a freshly loaded business in place and reports what happened.
type mutation func(b *models.Business) ([]event, error)

func (s *DefaultBusinessService) load(ctx context.Context, id string) (*models.Business, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil, utils.NotFound("Business not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load business", err)
	}
	normalize(b)
	return b, nil
}

// mutate runs the read-authorize-modify-write cycle under optimistic concurrency.
// On a version conflict the business is re-read and fn re-applied.
func (s *DefaultBusinessService) mutate(ctx context.Context, actor policy.Actor, id string, action policy.Action, fn mutation) (*models.Business, error) {
	logger := utils.GetLogger()

	for attempt := 0; attempt <= maxWriteRetries; attempt++ {
		b, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := policy.Authorize(actor, action, b); err != nil {
			return nil, err
		}
		events, err := fn(b)
		if err != nil {
			return nil, err
		}

		err = s.Repo.Update(ctx, b)
		switch {
		case err == nil:
			for _, e := range events {
				s.Activity.Record(ctx, actor.ID, e.kind, e.description, e.entity)
			}
			return b, nil
		case errors.Is(err, repoerr.ErrVersionConflict):
			utils.VersionConflicts.Inc()
			logger.Info("Business write lost a version race, retrying",
				zap.String("businessId", id), zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, repoerr.ErrDuplicateKey):
			return nil, utils.BadRequest("Page name is already taken")
		case errors.Is(err, repoerr.ErrNotFound):
			return nil, utils.NotFound("Business not found")
		default:
			return nil, utils.Internal("Failed to save business", err)
		}
	}
	return nil, utils.Conflict("Business was modified concurrently, please retry")
}

// normalize replaces nil collections so responses carry [] and {} rather than null.
func normalize(b *models.Business) {
	if b.Services == nil {
		b.Services = []string{}
	}
	if b.Products == nil {
		b.Products = models.Catalog{}
	}
	for service, products := range b.Products {
		if products == nil {
			b.Products[service] = []models.Product{}
		}
	}
	if b.Images == nil {
		b.Images = []string{}
	}
	if b.Hours == nil {
		b.Hours = map[string]string{}
	}
}

func validateBusiness(b *models.Business) error {
	if err := models.ValidateStruct(b); err != nil {
		return utils.BadRequest(err.Error())
	}
	return nil
}
