package policy

import (
	"net/http"
	"testing"

	"businessconnect/models"
	"businessconnect/utils"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_RoleOnlyActions(t *testing.T) {
	owner := Actor{ID: "u1", Role: models.RoleBusinessOwner}
	user := Actor{ID: "u2", Role: models.RoleUser}
	admin := Actor{ID: "u3", Role: models.RoleAdmin}

	for _, action := range []Action{ActionCreateBusiness, ActionListOwn, ActionViewStats} {
		assert.NoError(t, Authorize(owner, action, nil), action)

		err := Authorize(user, action, nil)
		assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), action)

		err = Authorize(admin, action, nil)
		assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), action)
	}
}

func TestAuthorize_ResourceActions(t *testing.T) {
	business := &models.Business{ID: "b1", OwnerID: "owner"}
	owner := Actor{ID: "owner", Role: models.RoleBusinessOwner}
	stranger := Actor{ID: "other", Role: models.RoleBusinessOwner}
	admin := Actor{ID: "admin", Role: models.RoleAdmin}

	for _, action := range []Action{ActionUpdateBusiness, ActionDeleteBusiness, ActionManageProducts} {
		assert.NoError(t, Authorize(owner, action, business), action)
		assert.NoError(t, Authorize(admin, action, business), action)

		err := Authorize(stranger, action, business)
		assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), action)

		err = Authorize(owner, action, nil)
		assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), action)
	}
}

func TestAuthorize_AnonymousAndUnknown(t *testing.T) {
	err := Authorize(Actor{}, ActionCreateBusiness, nil)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	err = Authorize(Actor{ID: "u1", Role: models.RoleAdmin}, Action("business:launch"), nil)
	assert.EqualError(t, err, "Not authorized")
}
