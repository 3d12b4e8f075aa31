package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"businessconnect/database/repository/repoerr"
	"businessconnect/models"
	"businessconnect/services/analytics"
	"businessconnect/services/policy"
	"businessconnect/services/storage"
	"businessconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create registers a new business owned by the caller.
func (s *DefaultBusinessService) Create(ctx context.Context, actor policy.Actor, req CreateBusinessRequest) (*models.Business, error) {
	if err := policy.Authorize(actor, policy.ActionCreateBusiness, nil); err != nil {
		return nil, err
	}

	b := &models.Business{
		ID:          uuid.New().String(),
		OwnerID:     actor.ID,
		Name:        strings.TrimSpace(req.Name),
		Contact:     trimContact(req.Contact),
		Location:    strings.TrimSpace(req.Location),
		PageName:    strings.TrimSpace(req.PageName),
		Theme:       req.Theme,
		Description: req.Description,
		Website:     req.Website,
		Category:    req.Category,
		Services:    trimAll(req.Services),
		Hours:       req.Hours,
		Images:      req.Images,
		IsOpen:      true,
	}
	setIcons(b, req.Icon, req.CustomIcon)
	if req.IsOpen != nil {
		b.IsOpen = *req.IsOpen
	}
	normalize(b)
	b.ReconcileCatalog()

	if err := validateBusiness(b); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, repoerr.ErrDuplicateKey) {
			return nil, utils.BadRequest("Page name is already taken")
		}
		return nil, utils.Internal("Failed to create business", err)
	}

	if err := s.Analytics.Create(ctx, b.ID); err != nil {
		// Counters are upserted on first increment, so the business stays usable.
		utils.GetLogger().Error("Failed to create analytics record", zap.String("businessId", b.ID), zap.Error(err))
	}

	s.Activity.Record(ctx, actor.ID, models.ActivityBusinessCreate,
		fmt.Sprintf("%s created business: %s", actor.Name, b.Name), models.BusinessRef(b.ID))

	return b, nil
}

// Get resolves a business by ID or page name and counts the read as a view.
func (s *DefaultBusinessService) Get(ctx context.Context, idOrPageName, viewer string) (*models.Business, error) {
	b, err := s.Repo.GetByID(ctx, idOrPageName)
	if errors.Is(err, repoerr.ErrNotFound) {
		b, err = s.Repo.GetByPageName(ctx, idOrPageName)
	}
	if errors.Is(err, repoerr.ErrNotFound) {
		return nil, utils.NotFound("Business not found")
	}
	if err != nil {
		return nil, utils.Internal("Failed to load business", err)
	}
	normalize(b)

	s.Analytics.RecordView(ctx, b.ID, viewer, analytics.SourceSingle)
	return b, nil
}

// ListOwn returns the caller's businesses.
func (s *DefaultBusinessService) ListOwn(ctx context.Context, actor policy.Actor) ([]models.Business, error) {
	if err := policy.Authorize(actor, policy.ActionListOwn, nil); err != nil {
		return nil, err
	}
	businesses, err := s.Repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal("Failed to load businesses", err)
	}
	for i := range businesses {
		normalize(&businesses[i])
		s.Analytics.RecordView(ctx, businesses[i].ID, actor.ID, analytics.SourceOwnerList)
	}
	return businesses, nil
}

// ListPublic serves the unauthenticated catalog.
func (s *DefaultBusinessService) ListPublic(ctx context.Context, query PublicQuery, viewer string) (*PublicListing, error) {
	if query.Page < 0 || query.Limit < 0 || query.Limit > 100 {
		return nil, utils.BadRequest("page must be positive and limit between 1 and 100")
	}
	if query.Category != "" {
		if err := models.Validator().Var(query.Category, "category"); err != nil {
			return nil, utils.BadRequest(fmt.Sprintf("%q is not a valid category", query.Category))
		}
	}

	filter := repoFilter(query)
	summaries, total, err := s.Repo.ListPublic(ctx, filter)
	if err != nil {
		return nil, utils.Internal("Failed to load businesses", err)
	}
	if summaries == nil {
		summaries = []models.BusinessSummary{}
	}
	for _, summary := range summaries {
		s.Analytics.RecordView(ctx, summary.ID, viewer, analytics.SourcePublicList)
	}

	listing := &PublicListing{Businesses: summaries, TotalBusinesses: total}
	if query.Limit > 0 {
		listing.Page = max(query.Page, 1)
		listing.Limit = query.Limit
	}
	return listing, nil
}

// Delete removes a business with its icon, counters and reviews.
func (s *DefaultBusinessService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	logger := utils.GetLogger()

	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDeleteBusiness, b); err != nil {
		return err
	}

	if b.CustomIcon != "" {
		if publicID, ok := storage.PublicIDFromURL(b.CustomIcon); ok {
			if err := s.Images.DeleteImage(ctx, publicID); err != nil {
				logger.Warn("Failed to delete custom icon", zap.String("businessId", id), zap.String("publicId", publicID), zap.Error(err))
			}
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return utils.NotFound("Business not found")
		}
		return utils.Internal("Failed to delete business", err)
	}

	if err := s.Analytics.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete analytics record", zap.String("businessId", id), zap.Error(err))
	}
	if n, err := s.Reviews.DeleteByBusiness(ctx, id); err != nil {
		logger.Error("Failed to delete reviews", zap.String("businessId", id), zap.Error(err))
	} else if n > 0 {
		logger.Info("Deleted reviews of removed business", zap.String("businessId", id), zap.Int64("count", n))
	}

	s.Activity.Record(ctx, actor.ID, models.ActivityBusinessDelete,
		fmt.Sprintf("%s deleted business: %s", actor.Name, b.Name), models.BusinessRef(id))
	return nil
}

// RecordInquiry counts an inquiry against an existing business.
func (s *DefaultBusinessService) RecordInquiry(ctx context.Context, idOrPageName string) error {
	b, err := s.Repo.GetByID(ctx, idOrPageName)
	if errors.Is(err, repoerr.ErrNotFound) {
		b, err = s.Repo.GetByPageName(ctx, idOrPageName)
	}
	if errors.Is(err, repoerr.ErrNotFound) {
		return utils.NotFound("Business not found")
	}
	if err != nil {
		return utils.Internal("Failed to load business", err)
	}
	return s.Analytics.RecordInquiry(ctx, b.ID)
}

// Stats sums the caller's counters across all their businesses.
func (s *DefaultBusinessService) Stats(ctx context.Context, actor policy.Actor) (*models.BusinessStats, error) {
	if err := policy.Authorize(actor, policy.ActionViewStats, nil); err != nil {
		return nil, err
	}
	businesses, err := s.Repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, utils.Internal("Failed to load businesses", err)
	}

	ids := make([]string, 0, len(businesses))
	stats := &models.BusinessStats{}
	for _, b := range businesses {
		ids = append(ids, b.ID)
		stats.ServicesOffered += len(b.Services)
	}
	stats.ProfileViews, stats.Inquiries, err = s.Analytics.Totals(ctx, ids)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func repoFilter(q PublicQuery) businessFilter {
	f := businessFilter{Category: q.Category, Query: strings.TrimSpace(q.Q)}
	if q.Limit > 0 {
		page := max(q.Page, 1)
		f.Limit = int64(q.Limit)
		f.Skip = int64(page-1) * int64(q.Limit)
	}
	return f
}

// setIcons applies the rule that icon and customIcon are mutually exclusive.
// A custom icon wins when both are supplied.
func setIcons(b *models.Business, icon, customIcon string) {
	b.Icon = strings.TrimSpace(icon)
	b.CustomIcon = strings.TrimSpace(customIcon)
	if b.CustomIcon != "" {
		b.Icon = ""
	}
}

func trimContact(c models.Contact) models.Contact {
	return models.Contact{
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
	}
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
