package models

import (
	"math"
	"strings"
	"time"
)

// MaxServices is the hard cap on services per business.
const MaxServices = 5

// Categories lists the accepted business categories. The empty string means uncategorised.
var Categories = []string{
	"Coffee & Beverages",
	"Technology Repair",
	"Automotive Services",
	"Home Services",
	"Food & Dining",
	"Health & Fitness",
	"Beauty & Spa",
	"Education & Training",
	"Professional Services",
	"Retail & Shopping",
	"",
}

// Themes lists the accepted storefront themes.
var Themes = []string{"light", "dark", "blue", "green", ""}

type Contact struct {
	Phone string `bson:"phone" json:"phone" validate:"required"`
	Email string `bson:"email" json:"email" validate:"required,email"`
}

// Sales are display-only counters; no endpoint mutates them.
type Sales struct {
	Quantity int     `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}

type Product struct {
	ID             string            `bson:"id" json:"id" validate:"required"`
	Name           string            `bson:"name" json:"name" validate:"required"`
	Price          float64           `bson:"price" json:"price" validate:"gte=0"`
	Description    string            `bson:"description" json:"description"`
	Images         []string          `bson:"images" json:"images"`
	Rating         float64           `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	Sales          Sales             `bson:"sales" json:"sales"`
	Category       string            `bson:"category" json:"category"`
	InStock        bool              `bson:"inStock" json:"inStock"`
	Specifications map[string]string `bson:"specifications" json:"specifications"`
}

// Catalog maps a service name to the products offered under it.
type Catalog map[string][]Product

type Business struct {
	ID          string            `bson:"id" json:"id"`
	OwnerID     string            `bson:"ownerId" json:"ownerId" validate:"required"`
	Name        string            `bson:"name" json:"name" validate:"required"`
	Icon        string            `bson:"icon" json:"icon"`
	CustomIcon  string            `bson:"customIcon,omitempty" json:"customIcon,omitempty"`
	Contact     Contact           `bson:"contact" json:"contact"`
	Location    string            `bson:"location" json:"location" validate:"required"`
	PageName    string            `bson:"pageName" json:"pageName" validate:"required,pagename"`
	PageNameKey string            `bson:"pageNameKey" json:"-"`
	Theme       string            `bson:"theme" json:"theme" validate:"theme"`
	Description string            `bson:"description" json:"description"`
	Website     string            `bson:"website" json:"website"`
	Category    string            `bson:"category" json:"category" validate:"category"`
	Services    []string          `bson:"services" json:"services" validate:"max=5,unique,dive,required"`
	Products    Catalog           `bson:"products" json:"products" validate:"dive,keys,required,endkeys,dive"`
	Rating      float64           `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	RatingSum   float64           `bson:"ratingSum" json:"-"`
	ReviewCount int               `bson:"reviewCount" json:"reviewCount" validate:"gte=0"`
	Hours       map[string]string `bson:"hours" json:"hours"`
	Images      []string          `bson:"images" json:"images"`
	IsOpen      bool              `bson:"isOpen" json:"isOpen"`
	Version     int64             `bson:"version" json:"version"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// BusinessSummary is the reduced projection served by the public catalog.
type BusinessSummary struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Icon        string   `bson:"icon" json:"icon"`
	CustomIcon  string   `bson:"customIcon,omitempty" json:"customIcon,omitempty"`
	Theme       string   `bson:"theme" json:"theme"`
	Location    string   `bson:"location" json:"location"`
	PageName    string   `bson:"pageName" json:"pageName"`
	Services    []string `bson:"services" json:"services"`
	Rating      float64  `bson:"rating" json:"rating"`
	ReviewCount int      `bson:"reviewCount" json:"reviewCount"`
	Images      []string `bson:"images" json:"images"`
	Image       string   `bson:"-" json:"image"`
	IsOpen      bool     `bson:"isOpen" json:"isOpen"`
	Category    string   `bson:"category" json:"category"`
}

// NormalizePageName returns the case-insensitive uniqueness key for a page name.
func NormalizePageName(pageName string) string {
	return strings.ToLower(strings.TrimSpace(pageName))
}

// RoundRating returns the mean rating rounded half-up to one decimal place.
func RoundRating(sum float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Floor(sum/float64(count)*10+0.5) / 10
}

// HasService reports whether the business offers the named service.
func (b *Business) HasService(service string) bool {
	for _, s := range b.Services {
		if s == service {
			return true
		}
	}
	return false
}

// FindProduct locates a product within a service bucket. It returns -1 when absent.
func (b *Business) FindProduct(service, productID string) int {
	for i, p := range b.Products[service] {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

// ProductIDTaken reports whether any bucket already holds a product with id.
func (b *Business) ProductIDTaken(id string) bool {
	for _, products := range b.Products {
		for _, p := range products {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

// ReconcileCatalog drops buckets for services the business no longer offers and
// gives every offered service a bucket, so the catalog keys always equal Services.
func (b *Business) ReconcileCatalog() {
	if b.Products == nil {
		b.Products = Catalog{}
	}
	for service := range b.Products {
		if !b.HasService(service) {
			delete(b.Products, service)
		}
	}
	for _, service := range b.Services {
		if _, ok := b.Products[service]; !ok {
			b.Products[service] = []Product{}
		}
	}
}

// Summary builds the public catalog projection.
func (b *Business) Summary() BusinessSummary {
	s := BusinessSummary{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		CustomIcon:  b.CustomIcon,
		Theme:       b.Theme,
		Location:    b.Location,
		PageName:    b.PageName,
		Services:    b.Services,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		Images:      b.Images,
		IsOpen:      b.IsOpen,
		Category:    b.Category,
	}
	s.Normalize()
	return s
}

// Normalize fills the derived and never-null fields of a summary.
func (s *BusinessSummary) Normalize() {
	if s.Services == nil {
		s.Services = []string{}
	}
	if s.Images == nil {
		s.Images = []string{}
	}
	s.Image = ""
	if len(s.Images) > 0 {
		s.Image = s.Images[0]
	}
}

// BusinessStats aggregates an owner's analytics across businesses.
type BusinessStats struct {
	ProfileViews    int64 `json:"profileViews"`
	Inquiries       int64 `json:"inquiries"`
	ServicesOffered int   `json:"servicesOffered"`
}
