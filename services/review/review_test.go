package review

import (
	"context"
	"net/http"
	"testing"
	"time"

	"businessconnect/database/repository/memory"
	"businessconnect/models"
	"businessconnect/services/activity"
	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *DefaultReviewService
	store    *memory.Store
	business *models.Business
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	b := &models.Business{
		ID:       "biz-1",
		OwnerID:  "owner-1",
		Name:     "Brew House",
		PageName: "brewhouse",
		Services: []string{"Coffee"},
		Products: models.Catalog{"Coffee": {}},
	}
	require.NoError(t, store.Businesses.Create(context.Background(), b))

	svc := NewReviewService(store.Reviews, store.Businesses, store.Users, activity.NewActivityService(store.Activities))
	return &fixture{svc: svc, store: store, business: b}
}

func reviewer(n int) policy.Actor {
	id := string(rune('a' + n))
	return policy.Actor{ID: "user-" + id, Name: "Reviewer " + id, Role: models.RoleUser}
}

func TestCreate_RatingIsRoundedMean(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ratings := []float64{5, 4, 4}
	for i, r := range ratings {
		created, err := f.svc.Create(ctx, reviewer(i), f.business.ID, CreateReviewRequest{Rating: r, Comment: " great "})
		require.NoError(t, err)
		assert.Equal(t, int(r), created.Rating)
		assert.Equal(t, "great", created.Comment)
	}

	b, err := f.store.Businesses.GetByID(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, b.ReviewCount)
	// 13 / 3 = 4.333...
	assert.Equal(t, 4.3, b.Rating)

	_, err = f.svc.Create(ctx, reviewer(3), f.business.ID, CreateReviewRequest{Rating: 2})
	require.NoError(t, err)
	b, err = f.store.Businesses.GetByID(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, b.ReviewCount)
	// 15 / 4 = 3.75 rounds half-up.
	assert.Equal(t, 3.8, b.Rating)
}

func TestCreate_SecondReviewBySameUserIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	actor := reviewer(0)

	_, err := f.svc.Create(ctx, actor, f.business.ID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, actor, f.business.ID, CreateReviewRequest{Rating: 1})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	assert.EqualError(t, err, "You have already reviewed this business")

	b, err := f.store.Businesses.GetByID(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.ReviewCount)
	assert.Equal(t, 5.0, b.Rating)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, rating := range []float64{0, 6, 3.5, -1} {
		_, err := f.svc.Create(ctx, reviewer(0), f.business.ID, CreateReviewRequest{Rating: rating})
		assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err), rating)
	}

	_, err := f.svc.Create(ctx, reviewer(0), "missing", CreateReviewRequest{Rating: 4})
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestCreate_RecordsActivity(t *testing.T) {
	f := newFixture(t)
	actor := reviewer(0)

	_, err := f.svc.Create(context.Background(), actor, f.business.ID, CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	entries := f.store.Activities.All()
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActivityReviewCreate, entries[0].Type)
	assert.Equal(t, actor.ID, entries[0].UserID)
	assert.Equal(t, models.BusinessRef(f.business.ID), entries[0].Entity)
}

func TestList_NewestFirstWithCurrentAuthorNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Users.Create(ctx, &models.User{ID: "user-a", Name: "Renamed A", Email: "a@example.com", Role: models.RoleUser}))

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"Old Name A", "Ghost B"} {
		require.NoError(t, f.store.Reviews.Create(ctx, &models.Review{
			ID:         "r" + string(rune('1'+i)),
			BusinessID: f.business.ID,
			UserID:     reviewer(i).ID,
			UserName:   name,
			Rating:     4,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	reviews, err := f.svc.List(ctx, f.business.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[0].ID)
	assert.Equal(t, "Ghost B", reviews[0].UserName)
	assert.Equal(t, "Renamed A", reviews[1].UserName)

	_, err = f.svc.List(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestList_Empty(t *testing.T) {
	f := newFixture(t)
	reviews, err := f.svc.List(context.Background(), f.business.ID)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}
