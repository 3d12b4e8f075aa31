package models

import (
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityProfileUpdate  ActivityType = "profile_update"
	ActivityBusinessCreate ActivityType = "business_create"
	ActivityBusinessUpdate ActivityType = "business_update"
	ActivityBusinessDelete ActivityType = "business_delete"
	ActivityServiceAdd     ActivityType = "service_add"
	ActivityServiceUpdate  ActivityType = "service_update"
	ActivityServiceDelete  ActivityType = "service_delete"
	ActivityProductAdd     ActivityType = "product_add"
	ActivityProductUpdate  ActivityType = "product_update"
	ActivityProductDelete  ActivityType = "product_delete"
	ActivityReviewCreate   ActivityType = "review_create"
)

type EntityKind string

const (
	EntityBusiness EntityKind = "Business"
	EntityService  EntityKind = "Service"
	EntityProduct  EntityKind = "Product"
)

func (k EntityKind) Valid() bool {
	switch k {
	case EntityBusiness, EntityService, EntityProduct:
		return true
	}
	return false
}

// EntityRef points an activity at the thing it is about. Services and products are
// embedded in a business, so their IDs are scoped as "<businessId>/<name or id>".
type EntityRef struct {
	Kind EntityKind `bson:"kind" json:"kind"`
	ID   string     `bson:"id" json:"id"`
}

func BusinessRef(businessID string) *EntityRef {
	return &EntityRef{Kind: EntityBusiness, ID: businessID}
}

func ServiceRef(businessID, service string) *EntityRef {
	return &EntityRef{Kind: EntityService, ID: businessID + "/" + service}
}

func ProductRef(businessID, productID string) *EntityRef {
	return &EntityRef{Kind: EntityProduct, ID: businessID + "/" + productID}
}

func (r *EntityRef) Validate() error {
	if r == nil {
		return nil
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("invalid entity kind %q", r.Kind)
	}
	if r.ID == "" {
		return fmt.Errorf("entity reference of kind %s has no id", r.Kind)
	}
	return nil
}

type Activity struct {
	ID          string       `bson:"id" json:"id"`
	UserID      string       `bson:"userId" json:"userId"`
	Type        ActivityType `bson:"type" json:"type"`
	Description string       `bson:"description" json:"description"`
	Entity      *EntityRef   `bson:"entity,omitempty" json:"entity,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
}
