package business

import (
	"io"

	"businessconnect/models"
)

// CreateBusinessRequest is the body of POST /api/businesses.
type CreateBusinessRequest struct {
	Name        string            `json:"name"`
	Icon        string            `json:"icon"`
	CustomIcon  string            `json:"customIcon"`
	Contact     models.Contact    `json:"contact"`
	Location    string            `json:"location"`
	PageName    string            `json:"pageName"`
	Theme       string            `json:"theme"`
	Description string            `json:"description"`
	Website     string            `json:"website"`
	Category    string            `json:"category"`
	Services    []string          `json:"services"`
	Hours       map[string]string `json:"hours"`
	Images      []string          `json:"images"`
	IsOpen      *bool             `json:"isOpen"`
}

// UpdateBusinessRequest is the body of PUT /api/businesses/:id. Nil fields are
// left untouched; a provided empty string clears an optional field.
type UpdateBusinessRequest struct {
	Name        *string                    `json:"name"`
	Icon        *string                    `json:"icon"`
	CustomIcon  *string                    `json:"customIcon"`
	Contact     *models.Contact            `json:"contact"`
	Location    *string                    `json:"location"`
	PageName    *string                    `json:"pageName"`
	Theme       *string                    `json:"theme"`
	Description *string                    `json:"description"`
	Website     *string                    `json:"website"`
	Category    *string                    `json:"category"`
	Services    *[]string                  `json:"services"`
	Products    map[string][]ProductInput  `json:"products"`
	Hours       *map[string]string         `json:"hours"`
	Images      *[]string                  `json:"images"`
	IsOpen      *bool                      `json:"isOpen"`
}

// ProductInput is a product as supplied by a client. Rating and sales are
// server-owned and therefore absent.
type ProductInput struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	Description    string            `json:"description"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	InStock        *bool             `json:"inStock"`
	Specifications map[string]string `json:"specifications"`
}

// ProductRequest is the body of the product endpoints.
type ProductRequest struct {
	Service string        `json:"service"`
	Product *ProductInput `json:"product"`
}

// PublicQuery filters and pages the public catalog. Limit 0 returns everything.
type PublicQuery struct {
	Category string
	Q        string
	Page     int
	Limit    int
}

// PublicListing is the response of the public catalog.
type PublicListing struct {
	Businesses      []models.BusinessSummary `json:"businesses"`
	TotalBusinesses int64                    `json:"totalBusinesses"`
	Page            int                      `json:"page,omitempty"`
	Limit           int                      `json:"limit,omitempty"`
}

// ImageUpload is a file received for the image host.
type ImageUpload struct {
	File io.Reader
	Size int64
}
