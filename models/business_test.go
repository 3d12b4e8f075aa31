package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBusiness() *Business {
	return &Business{
		ID:       "b1",
		OwnerID:  "owner",
		Name:     "Brew House",
		Contact:  Contact{Phone: "+254700000000", Email: "hello@brew.house"},
		Location: "Nairobi",
		PageName: "brewhouse",
		Category: "Coffee & Beverages",
		Services: []string{"Coffee"},
		Products: Catalog{"Coffee": {}},
	}
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 0.0, RoundRating(0, 0))
	assert.Equal(t, 4.3, RoundRating(13, 3))
	assert.Equal(t, 3.8, RoundRating(15, 4))
	assert.Equal(t, 4.5, RoundRating(9, 2))
	assert.Equal(t, 1.0, RoundRating(1, 1))
}

func TestNormalizePageName(t *testing.T) {
	assert.Equal(t, "brewhouse", NormalizePageName("  BrewHouse "))
}

func TestReconcileCatalog(t *testing.T) {
	b := validBusiness()
	b.Services = []string{"Coffee", "Tea"}
	b.Products = Catalog{
		"Coffee": {{ID: "p1", Name: "Latte", Price: 4.5}},
		"Ghost":  {{ID: "p2", Name: "Phantom", Price: 1}},
	}
	b.ReconcileCatalog()

	assert.Len(t, b.Products, 2)
	assert.Len(t, b.Products["Coffee"], 1)
	assert.NotNil(t, b.Products["Tea"])
	assert.NotContains(t, b.Products, "Ghost")
}

func TestBusinessLookups(t *testing.T) {
	b := validBusiness()
	b.Products["Coffee"] = []Product{{ID: "p1", Name: "Latte"}}

	assert.True(t, b.HasService("Coffee"))
	assert.False(t, b.HasService("coffee"))
	assert.Equal(t, 0, b.FindProduct("Coffee", "p1"))
	assert.Equal(t, -1, b.FindProduct("Tea", "p1"))
	assert.True(t, b.ProductIDTaken("p1"))
	assert.False(t, b.ProductIDTaken("p2"))
}

func TestSummary_ImageIsFirstGalleryImage(t *testing.T) {
	b := validBusiness()
	s := b.Summary()
	assert.Empty(t, s.Image)
	assert.NotNil(t, s.Images)

	b.Images = []string{"https://img.example/1.png", "https://img.example/2.png"}
	s = b.Summary()
	assert.Equal(t, "https://img.example/1.png", s.Image)
}

func TestValidateStruct_Business(t *testing.T) {
	require.NoError(t, ValidateStruct(validBusiness()))

	b := validBusiness()
	b.Services = []string{"a", "b", "c", "d", "e", "f"}
	err := ValidateStruct(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maximum 5 services allowed")

	b = validBusiness()
	b.PageName = "brew house"
	assert.Error(t, ValidateStruct(b))

	b = validBusiness()
	b.Theme = "neon"
	err = ValidateStruct(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"neon" is not a valid theme`)

	b = validBusiness()
	b.Contact.Email = ""
	err = ValidateStruct(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")

	b = validBusiness()
	b.Products["Coffee"] = []Product{{ID: "p1", Price: 3}}
	err = ValidateStruct(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestEntityRef(t *testing.T) {
	assert.NoError(t, BusinessRef("b1").Validate())
	assert.Equal(t, "b1/Coffee", ServiceRef("b1", "Coffee").ID)
	assert.Equal(t, EntityProduct, ProductRef("b1", "p1").Kind)

	var nilRef *EntityRef
	assert.NoError(t, nilRef.Validate())
	assert.Error(t, (&EntityRef{Kind: "Order", ID: "o1"}).Validate())
	assert.Error(t, (&EntityRef{Kind: EntityBusiness}).Validate())
}
