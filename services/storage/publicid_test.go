package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url string
		id  string
		ok  bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/business_images/abc123.png", "business_images/abc123", true},
		{"https://res.cloudinary.com/demo/image/upload/business_images/abc123.png", "business_images/abc123", true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_200/v17/business_images/logo.jpg", "business_images/logo", true},
		{"https://res.cloudinary.com/demo/image/upload/v1/logo.png", "logo", true},
		{"https://cdn.example.com/assets/icons/shop.svg", "shop", true},
		{"https://cdn.example.com/", "", false},
		{"", "", false},
		{"://not a url", "", false},
	}
	for _, tc := range cases {
		id, ok := PublicIDFromURL(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.id, id, tc.url)
	}
}
