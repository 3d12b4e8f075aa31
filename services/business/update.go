package business

import (
	"context"
	"fmt"
	"strings"

	"businessconnect/models"
	"businessconnect/services/policy"
	"businessconnect/utils"
)

// Update applies a partial update. Products are replaced first, then the
// service list is diffed, and finally the catalog is reconciled so every
// product bucket belongs to an offered service.
func (s *DefaultBusinessService) Update(ctx context.Context, actor policy.Actor, id string, req UpdateBusinessRequest) (*models.Business, error) {
	return s.mutate(ctx, actor, id, policy.ActionUpdateBusiness, func(b *models.Business) ([]event, error) {
		if err := applyFields(b, req); err != nil {
			return nil, err
		}

		if req.Products != nil {
			catalog, err := replaceCatalog(b, req.Products)
			if err != nil {
				return nil, err
			}
			b.Products = catalog
		}

		var events []event
		if req.Services != nil {
			events = diffServices(b, trimAll(*req.Services), actor.Name)
		}

		b.ReconcileCatalog()
		if err := validateBusiness(b); err != nil {
			return nil, err
		}

		events = append(events, event{
			kind:        models.ActivityBusinessUpdate,
			description: fmt.Sprintf("%s updated business: %s", actor.Name, b.Name),
			entity:      models.BusinessRef(b.ID),
		})
		return events, nil
	})
}

func applyFields(b *models.Business, req UpdateBusinessRequest) error {
	required := []struct {
		name  string
		value *string
		dst   *string
	}{
		{"name", req.Name, &b.Name},
		{"location", req.Location, &b.Location},
		{"pageName", req.PageName, &b.PageName},
	}
	for _, f := range required {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return utils.BadRequest(fmt.Sprintf("%s cannot be empty", f.name))
		}
		*f.dst = v
	}

	if req.Contact != nil {
		contact := trimContact(*req.Contact)
		if contact.Phone == "" || contact.Email == "" {
			return utils.BadRequest("contact phone and email are required")
		}
		b.Contact = contact
	}

	optional := []struct {
		value *string
		dst   *string
	}{
		{req.Theme, &b.Theme},
		{req.Description, &b.Description},
		{req.Website, &b.Website},
		{req.Category, &b.Category},
	}
	for _, f := range optional {
		if f.value != nil {
			*f.dst = *f.value
		}
	}

	if req.Icon != nil || req.CustomIcon != nil {
		icon, customIcon := b.Icon, b.CustomIcon
		if req.Icon != nil {
			icon = *req.Icon
			if strings.TrimSpace(icon) != "" {
				customIcon = ""
			}
		}
		if req.CustomIcon != nil {
			customIcon = *req.CustomIcon
		}
		setIcons(b, icon, customIcon)
	}

	if req.Hours != nil {
		b.Hours = *req.Hours
	}
	if req.Images != nil {
		b.Images = *req.Images
	}
	if req.IsOpen != nil {
		b.IsOpen = *req.IsOpen
	}
	normalize(b)
	return nil
}

// replaceCatalog builds the new product mapping from client input. Rating and
// sales carry over from an existing product with the same ID.
func replaceCatalog(b *models.Business, input map[string][]ProductInput) (models.Catalog, error) {
	existing := map[string]models.Product{}
	for _, products := range b.Products {
		for _, p := range products {
			existing[p.ID] = p
		}
	}

	catalog := make(models.Catalog, len(input))
	taken := map[string]bool{}
	for service, products := range input {
		bucket := make([]models.Product, 0, len(products))
		for _, in := range products {
			if err := validateProductInput(&in); err != nil {
				return nil, err
			}
			p := newProduct(in, func(id string) bool { return taken[id] })
			if prev, ok := existing[p.ID]; ok {
				p.Rating = prev.Rating
				p.Sales = prev.Sales
			}
			taken[p.ID] = true
			bucket = append(bucket, p)
		}
		catalog[strings.TrimSpace(service)] = bucket
	}
	return catalog, nil
}

// diffServices swaps in the new service list, dropping buckets of removed
// services and opening buckets for added ones.
func diffServices(b *models.Business, next []string, actorName string) []event {
	var events []event
	nextSet := make(map[string]bool, len(next))
	for _, s := range next {
		nextSet[s] = true
	}

	for _, service := range b.Services {
		if nextSet[service] {
			continue
		}
		delete(b.Products, service)
		events = append(events, event{
			kind:        models.ActivityServiceDelete,
			description: fmt.Sprintf("%s removed service: %s from business: %s", actorName, service, b.Name),
			entity:      models.ServiceRef(b.ID, service),
		})
	}

	for _, service := range next {
		if b.HasService(service) {
			continue
		}
		if _, ok := b.Products[service]; !ok {
			b.Products[service] = []models.Product{}
		}
		events = append(events, event{
			kind:        models.ActivityServiceAdd,
			description: fmt.Sprintf("%s added service: %s to business: %s", actorName, service, b.Name),
			entity:      models.ServiceRef(b.ID, service),
		})
	}

	b.Services = next
	return events
}
