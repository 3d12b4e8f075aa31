// Package policy centralises who may do what to a business.
package policy

import (
	"businessconnect/models"
	"businessconnect/utils"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID        string
	Name      string
	Role      models.Role
	Avatar    string
	SessionID string
}

// Action names an operation guarded by Authorize.
type Action string

const (
	ActionCreateBusiness Action = "business:create"
	ActionListOwn        Action = "business:list_own"
	ActionViewStats      Action = "business:stats"
	ActionUpdateBusiness Action = "business:update"
	ActionDeleteBusiness Action = "business:delete"
	ActionManageProducts Action = "business:manage_products"
)

var denials = map[Action]string{
	ActionCreateBusiness: "Only business owners can create business profiles",
	ActionListOwn:        "Only business owners can view business profiles",
	ActionViewStats:      "Only business owners can view business statistics",
	ActionUpdateBusiness: "Not authorized to update this business",
	ActionDeleteBusiness: "Not authorized to delete this business",
	ActionManageProducts: "Not authorized to manage products of this business",
}

// Authorize returns nil when actor may perform action on resource, and a 403
// AppError otherwise. resource is ignored for role-only actions.
func Authorize(actor Actor, action Action, resource *models.Business) error {
	if allowed(actor, action, resource) {
		return nil
	}
	msg, ok := denials[action]
	if !ok {
		msg = "Not authorized"
	}
	return utils.Forbidden(msg)
}

func allowed(actor Actor, action Action, resource *models.Business) bool {
	if actor.ID == "" {
		return false
	}
	switch action {
	case ActionCreateBusiness, ActionListOwn, ActionViewStats:
		return actor.Role == models.RoleBusinessOwner
	case ActionUpdateBusiness, ActionDeleteBusiness, ActionManageProducts:
		if resource == nil {
			return false
		}
		return resource.OwnerID == actor.ID || actor.Role == models.RoleAdmin
	}
	return false
}
