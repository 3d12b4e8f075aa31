package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"businessconnect/database/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setDeduper remembers keys forever, ignoring the window.
type setDeduper struct {
	seen map[string]bool
	err  error
}

func (d *setDeduper) FirstView(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func views(t *testing.T, repo *memory.AnalyticsRepo, businessID string) int64 {
	t.Helper()
	a, err := repo.Get(context.Background(), businessID)
	require.NoError(t, err)
	return a.ProfileViews
}

func TestParseViewPolicy(t *testing.T) {
	p, err := ParseViewPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ViewPolicyAllReads, p)

	p, err = ParseViewPolicy(" Single_Reads ")
	require.NoError(t, err)
	assert.Equal(t, ViewPolicySingleReads, p)

	_, err = ParseViewPolicy("sometimes")
	assert.Error(t, err)
}

func TestViewPolicy_Counts(t *testing.T) {
	assert.True(t, ViewPolicyAllReads.Counts(SourcePublicList))
	assert.True(t, ViewPolicyAllReads.Counts(SourceOwnerList))
	assert.True(t, ViewPolicySingleReads.Counts(SourceSingle))
	assert.False(t, ViewPolicySingleReads.Counts(SourcePublicList))
	assert.False(t, ViewPolicyNone.Counts(SourceSingle))
}

func TestRecordView_FollowsPolicy(t *testing.T) {
	repo := memory.NewAnalyticsRepo()
	ctx := context.Background()
	svc := NewAnalyticsService(repo, ViewPolicySingleReads, 0, nil)
	require.NoError(t, svc.Create(ctx, "b1"))

	svc.RecordView(ctx, "b1", "ip:1", SourcePublicList)
	svc.RecordView(ctx, "b1", "ip:1", SourceSingle)
	svc.RecordView(ctx, "b1", "ip:1", SourceSingle)
	assert.Equal(t, int64(2), views(t, repo, "b1"))
}

func TestRecordView_DedupWindow(t *testing.T) {
	repo := memory.NewAnalyticsRepo()
	ctx := context.Background()
	dedup := &setDeduper{seen: map[string]bool{}}
	svc := NewAnalyticsService(repo, ViewPolicyAllReads, time.Minute, dedup)

	svc.RecordView(ctx, "b1", "ip:1", SourceSingle)
	svc.RecordView(ctx, "b1", "ip:1", SourcePublicList)
	svc.RecordView(ctx, "b1", "ip:2", SourceSingle)
	assert.Equal(t, int64(2), views(t, repo, "b1"))

	// Anonymous viewers without a key are never deduplicated.
	svc.RecordView(ctx, "b1", "", SourceSingle)
	svc.RecordView(ctx, "b1", "", SourceSingle)
	assert.Equal(t, int64(4), views(t, repo, "b1"))
}

func TestRecordView_DedupFailureStillCounts(t *testing.T) {
	repo := memory.NewAnalyticsRepo()
	svc := NewAnalyticsService(repo, ViewPolicyAllReads, time.Minute, &setDeduper{err: errors.New("redis down")})

	svc.RecordView(context.Background(), "b1", "ip:1", SourceSingle)
	assert.Equal(t, int64(1), views(t, repo, "b1"))
}

func TestRedisDeduper_NilClientAlwaysFirst(t *testing.T) {
	first, err := RedisDeduper{}.FirstView(context.Background(), "b1:ip:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestTotalsAndInquiries(t *testing.T) {
	repo := memory.NewAnalyticsRepo()
	ctx := context.Background()
	svc := NewAnalyticsService(repo, "", 0, nil)

	svc.RecordView(ctx, "b1", "", SourceSingle)
	svc.RecordView(ctx, "b2", "", SourceOwnerList)
	require.NoError(t, svc.RecordInquiry(ctx, "b2"))

	views, inquiries, err := svc.Totals(ctx, []string{"b1", "b2", "b3"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)
	assert.Equal(t, int64(1), inquiries)

	missing, err := svc.Get(ctx, "b3")
	require.NoError(t, err)
	assert.Zero(t, missing.ProfileViews)

	require.NoError(t, svc.Delete(ctx, "b1"))
	views, _, err = svc.Totals(ctx, []string{"b1"})
	require.NoError(t, err)
	assert.Zero(t, views)
}
