package user

import (
	"context"
	"net/http"
	"testing"

	"businessconnect/database/repository/memory"
	"businessconnect/models"
	"businessconnect/services/activity"
	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*DefaultUserService, *memory.Store) {
	store := memory.NewStore()
	return NewUserService(store.Users, activity.NewActivityService(store.Activities)), store
}

func register(t *testing.T, svc *DefaultUserService, email string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Olive Owner",
		Username: "olive",
		Email:    email,
		Password: "secret123",
		Role:     models.RoleBusinessOwner,
	}, SessionMeta{IP: "10.0.0.1", UserAgent: "test-agent"})
	require.NoError(t, err)
	return resp
}

func TestRegister_IssuesTokenAndSession(t *testing.T) {
	svc, _ := newTestService()
	resp := register(t, svc, "Olive@Example.com")

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "olive@example.com", resp.Email)
	assert.Equal(t, models.RoleBusinessOwner, resp.Role)
	assert.NotEqual(t, "secret123", resp.PasswordHash)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "test-agent", resp.Sessions[0].Device)
	assert.Equal(t, utils.HashToken(resp.Token), resp.Sessions[0].TokenHash)

	actor, err := svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, actor.ID)
	assert.Equal(t, resp.Sessions[0].ID, actor.SessionID)
	assert.Equal(t, models.RoleBusinessOwner, actor.Role)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	meta := SessionMeta{}

	cases := map[string]RegisterRequest{
		"missing name":   {Email: "a@example.com", Password: "secret123"},
		"short password": {Name: "A", Email: "a@example.com", Password: "123"},
		"admin role":     {Name: "A", Email: "a@example.com", Password: "secret123", Role: models.RoleAdmin},
		"unknown role":   {Name: "A", Email: "a@example.com", Password: "secret123", Role: "wizard"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "secret123"},
		"bad username":   {Name: "A", Username: "no spaces", Email: "a@example.com", Password: "secret123"},
	}
	for name, req := range cases {
		_, err := svc.Register(ctx, req, meta)
		assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err), name)
	}
}

func TestRegister_DefaultsToUserRoleAndRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Una", Email: "una@example.com", Password: "secret123"}, SessionMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Equal(t, "Unknown Device", resp.Sessions[0].Device)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Una Again", Email: "UNA@example.com", Password: "secret123"}, SessionMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	assert.EqualError(t, err, "User with this email or username already exists")
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	register(t, svc, "olive@example.com")

	byEmail, err := svc.Login(ctx, LoginRequest{Email: "olive@example.com", Password: "secret123", Device: "Laptop"}, SessionMeta{IP: "10.0.0.2"})
	require.NoError(t, err)
	assert.Len(t, byEmail.Sessions, 2)
	assert.Equal(t, "Laptop", byEmail.Sessions[1].Device)
	assert.Equal(t, "10.0.0.2", byEmail.Sessions[1].IP)

	byUsername, err := svc.Login(ctx, LoginRequest{Email: "olive", Password: "secret123"}, SessionMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, byEmail.Token, byUsername.Token)

	_, err = svc.Login(ctx, LoginRequest{Email: "olive", Password: "wrong-password"}, SessionMeta{})
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret123"}, SessionMeta{})
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "garbage")
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	token, err := utils.GenerateToken("ghost", "session", utils.TokenTTL())
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resp := register(t, svc, "olive@example.com")

	actor, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, *actor))

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	// Anonymous logout is a no-op.
	assert.NoError(t, svc.Logout(ctx, policy.Actor{}))
}

func TestSessions_ListAndRevoke(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	first := register(t, svc, "olive@example.com")
	second, err := svc.Login(ctx, LoginRequest{Email: "olive", Password: "secret123"}, SessionMeta{})
	require.NoError(t, err)

	current, err := svc.Authenticate(ctx, second.Token)
	require.NoError(t, err)

	sessions, err := svc.ListSessions(ctx, *current)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.False(t, sessions[0].Current)
	assert.True(t, sessions[1].Current)

	err = svc.RevokeSession(ctx, *current, current.SessionID)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	err = svc.RevokeSession(ctx, *current, "unknown")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))

	require.NoError(t, svc.RevokeSession(ctx, *current, first.Sessions[0].ID))
	_, err = svc.Authenticate(ctx, first.Token)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	_, err = svc.Authenticate(ctx, second.Token)
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	resp := register(t, svc, "olive@example.com")
	other, err := svc.Register(ctx, RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "secret123"}, SessionMeta{})
	require.NoError(t, err)

	actor, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)

	bio := "Roaster"
	name := "Olive O."
	updated, err := svc.UpdateProfile(ctx, *actor, UpdateProfileRequest{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Olive O.", updated.Name)
	assert.Equal(t, "Roaster", updated.Bio)
	assert.Equal(t, "olive@example.com", updated.Email)

	refreshed, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Olive O.", refreshed.Name)

	taken := other.Email
	_, err = svc.UpdateProfile(ctx, *actor, UpdateProfileRequest{Email: &taken})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	empty := " "
	_, err = svc.UpdateProfile(ctx, *actor, UpdateProfileRequest{Name: &empty})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	activities, err := svc.Activities(ctx, *actor)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, models.ActivityProfileUpdate, activities[0].Type)
	assert.Len(t, store.Activities.All(), 1)
}
