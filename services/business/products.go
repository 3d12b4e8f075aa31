package business

import (
	"context"
	"fmt"
	"strings"
	"time"

	"businessconnect/models"
	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/google/uuid"
)

// AddProduct appends a product to one of the business's service buckets.
func (s *DefaultBusinessService) AddProduct(ctx context.Context, actor policy.Actor, id string, req ProductRequest) (*models.Business, error) {
	service, err := validateProductRequest(req)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, actor, id, policy.ActionManageProducts, func(b *models.Business) ([]event, error) {
		if !b.HasService(service) {
			return nil, utils.BadRequest("Service not found in business")
		}

		product := newProduct(*req.Product, b.ProductIDTaken)
		b.Products[service] = append(b.Products[service], product)

		return []event{{
			kind:        models.ActivityProductAdd,
			description: fmt.Sprintf("%s added product: %s to service: %s in business: %s", actor.Name, product.Name, service, b.Name),
			entity:      models.ProductRef(b.ID, product.ID),
		}}, nil
	})
}

// UpdateProduct overwrites a product's editable fields. Rating and sales carry over;
// category, stock and specifications keep their values when omitted.
func (s *DefaultBusinessService) UpdateProduct(ctx context.Context, actor policy.Actor, id, productID string, req ProductRequest) (*models.Business, error) {
	service, err := validateProductRequest(req)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, actor, id, policy.ActionManageProducts, func(b *models.Business) ([]event, error) {
		if !b.HasService(service) {
			return nil, utils.BadRequest("Service not found in business")
		}
		idx := b.FindProduct(service, productID)
		if idx == -1 {
			return nil, utils.NotFound("Product not found")
		}

		in := req.Product
		prev := b.Products[service][idx]
		updated := models.Product{
			ID:             productID,
			Name:           strings.TrimSpace(in.Name),
			Price:          in.Price,
			Description:    in.Description,
			Images:         nonNilStrings(in.Images),
			Rating:         prev.Rating,
			Sales:          prev.Sales,
			Category:       prev.Category,
			InStock:        prev.InStock,
			Specifications: prev.Specifications,
		}
		if in.Category != "" {
			updated.Category = in.Category
		}
		if in.InStock != nil {
			updated.InStock = *in.InStock
		}
		if in.Specifications != nil {
			updated.Specifications = in.Specifications
		}
		if updated.Specifications == nil {
			updated.Specifications = map[string]string{}
		}
		b.Products[service][idx] = updated

		return []event{{
			kind:        models.ActivityProductUpdate,
			description: fmt.Sprintf("%s updated product: %s in service: %s for business: %s", actor.Name, updated.Name, service, b.Name),
			entity:      models.ProductRef(b.ID, productID),
		}}, nil
	})
}

// DeleteProduct removes a product from the named service bucket.
func (s *DefaultBusinessService) DeleteProduct(ctx context.Context, actor policy.Actor, id, productID, service string) (*models.Business, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return nil, utils.BadRequest("Service is required")
	}

	return s.mutate(ctx, actor, id, policy.ActionManageProducts, func(b *models.Business) ([]event, error) {
		idx := b.FindProduct(service, productID)
		if idx == -1 {
			return nil, utils.NotFound("Product not found")
		}

		products := b.Products[service]
		removed := products[idx]
		b.Products[service] = append(products[:idx:idx], products[idx+1:]...)

		return []event{{
			kind:        models.ActivityProductDelete,
			description: fmt.Sprintf("%s deleted product: %s from service: %s in business: %s", actor.Name, removed.Name, service, b.Name),
			entity:      models.ProductRef(b.ID, removed.ID),
		}}, nil
	})
}

func validateProductRequest(req ProductRequest) (string, error) {
	service := strings.TrimSpace(req.Service)
	if service == "" || req.Product == nil {
		return "", utils.BadRequest("Service, product name, and price are required")
	}
	if err := validateProductInput(req.Product); err != nil {
		return "", err
	}
	return service, nil
}

func validateProductInput(in *ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return utils.BadRequest("Service, product name, and price are required")
	}
	if in.Price <= 0 {
		return utils.BadRequest("Product price must be greater than 0")
	}
	return nil
}

// newProduct builds a fresh product with server-owned fields zeroed. The ID is
// the client's when free, otherwise p<epoch-ms>, with a random suffix on collision.
func newProduct(in ProductInput, taken func(id string) bool) models.Product {
	base := strings.TrimSpace(in.ID)
	if base == "" {
		base = fmt.Sprintf("p%d", time.Now().UnixMilli())
	}
	id := base
	for taken(id) {
		id = fmt.Sprintf("%s-%s", base, uuid.New().String()[:8])
	}

	p := models.Product{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Price:          in.Price,
		Description:    in.Description,
		Images:         nonNilStrings(in.Images),
		Category:       in.Category,
		InStock:        true,
		Specifications: in.Specifications,
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	return p
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
