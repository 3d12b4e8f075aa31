// Package memory provides in-process repositories with the same uniqueness and
// versioning rules as the MongoDB ones. It backs DATABASE_URL=memory:// and tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"businessconnect/models"
)

// Store bundles one repository per collection.
type Store struct {
	Users      *UserRepo
	Businesses *BusinessRepo
	Reviews    *ReviewRepo
	Analytics  *AnalyticsRepo
	Activities *ActivityRepo
}

func NewStore() *Store {
	return &Store{
		Users:      NewUserRepo(),
		Businesses: NewBusinessRepo(),
		Reviews:    NewReviewRepo(),
		Analytics:  NewAnalyticsRepo(),
		Activities: NewActivityRepo(),
	}
}

type lockedMap[T any] struct {
	mu   sync.RWMutex
	docs map[string]T
}

func newLockedMap[T any]() lockedMap[T] {
	return lockedMap[T]{docs: make(map[string]T)}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneProduct(p models.Product) models.Product {
	p.Images = cloneStrings(p.Images)
	p.Specifications = cloneStringMap(p.Specifications)
	return p
}

func cloneBusiness(b *models.Business) *models.Business {
	c := *b
	c.Services = cloneStrings(b.Services)
	c.Images = cloneStrings(b.Images)
	c.Hours = cloneStringMap(b.Hours)
	if b.Products != nil {
		c.Products = make(models.Catalog, len(b.Products))
		for service, products := range b.Products {
			cp := make([]models.Product, len(products))
			for i, p := range products {
				cp[i] = cloneProduct(p)
			}
			c.Products[service] = cp
		}
	}
	return &c
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.Sessions != nil {
		c.Sessions = make([]models.Session, len(u.Sessions))
		copy(c.Sessions, u.Sessions)
	}
	return &c
}

func sortedBusinesses(docs map[string]*models.Business, keep func(*models.Business) bool) []*models.Business {
	out := make([]*models.Business, 0, len(docs))
	for _, b := range docs {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
