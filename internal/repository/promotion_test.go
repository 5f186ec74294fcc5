package repository

import (
	"context"
	"testing"
	"time"

	"medialane/internal/models"
	"medialane/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotionRepository_Plans(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()

	ads := []models.AdsPlan{
		{Name: "Weekly", Price: 20, Duration: 7, Active: true},
		{Name: "Daily", Price: 5, Duration: 1, Active: true},
		{Name: "Retired", Price: 1, Duration: 1, Active: false},
	}
	stories := []models.StoryPlan{{Name: "Flash", Price: 2, Duration: 1, Active: true}}
	require.NoError(t, repo.EnsurePlans(ctx, ads, stories))
	require.NoError(t, repo.EnsurePlans(ctx, []models.AdsPlan{{Name: "Weekly", Price: 99, Duration: 7, Active: true}}, nil))

	all, err := repo.ListAdsPlans(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.ListAdsPlans(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Daily", active[0].Name, "ordered by price")
	assert.Equal(t, 20.0, active[1].Price, "existing plan untouched")

	storyPlans, err := repo.ListStoryPlans(ctx, true)
	require.NoError(t, err)
	assert.Len(t, storyPlans, 1)

	err = repo.CreateAdsPlan(ctx, &models.AdsPlan{Name: "Daily", Price: 1, Duration: 1})
	assert.ErrorIs(t, err, ErrDuplicate)

	plan, err := repo.GetStoryPlan(ctx, storyPlans[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Flash", plan.Name)
	missing, err := repo.GetAdsPlan(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPromotionRepository_LiveWindow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()
	client := testutil.CreateUser(t, db, "advertiser", models.RoleAdsClient)

	plan := &models.AdsPlan{Name: "Week", Price: 10, Duration: 7, Active: true}
	require.NoError(t, repo.CreateAdsPlan(ctx, plan))

	now := time.Now().UTC()
	start, end := models.PromotionWindow(now.Add(-time.Hour), plan.Duration)
	live := &models.Ads{Slug: "live", Title: "Live", UserID: client.ID, PlanID: plan.ID, StartDate: start, EndDate: end, Active: true}
	expiredStart, expiredEnd := models.PromotionWindow(now.AddDate(0, 0, -30), plan.Duration)
	expired := &models.Ads{Slug: "expired", Title: "Expired", UserID: client.ID, PlanID: plan.ID, StartDate: expiredStart, EndDate: expiredEnd, Active: true}
	disabled := &models.Ads{Slug: "disabled", Title: "Disabled", UserID: client.ID, PlanID: plan.ID, StartDate: start, EndDate: end}
	for _, ad := range []*models.Ads{live, expired, disabled} {
		require.NoError(t, repo.CreateAds(ctx, ad))
	}

	got, err := repo.ListLiveAds(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "live", got[0].Slug)
	require.NotNil(t, got[0].Plan)
	assert.Equal(t, "Week", got[0].Plan.Name)

	mine, err := repo.ListAdsByUser(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	exists, err := repo.SlugExists(ctx, models.PromotionAds, "live")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.SlugExists(ctx, models.PromotionStory, "live")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.SetActive(ctx, models.PromotionAds, disabled.ID, true))
	assert.ErrorIs(t, repo.SetActive(ctx, models.PromotionAds, disabled.ID, true), ErrNoChange)
	got, err = repo.ListLiveAds(ctx, now)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, repo.Delete(ctx, models.PromotionAds, expired.ID))
	assert.ErrorIs(t, repo.Delete(ctx, models.PromotionAds, expired.ID), ErrNotFound)
	_, err = repo.SlugExists(ctx, models.PromotionKind("banner"), "x")
	assert.Error(t, err)
}

func TestPromotionRepository_Stories(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()
	client := testutil.CreateUser(t, db, "storyteller", models.RoleAdsClient)

	plan := &models.StoryPlan{Name: "Day", Price: 3, Duration: 1, Active: true}
	require.NoError(t, repo.CreateStoryPlan(ctx, plan))

	start, end := models.PromotionWindow(time.Now().UTC().Add(-time.Minute), plan.Duration)
	story := &models.Story{Slug: "tale", Title: "Tale", UserID: client.ID, PlanID: plan.ID, StartDate: start, EndDate: end, Active: true}
	require.NoError(t, repo.CreateStory(ctx, story))

	got, err := repo.GetStory(ctx, story.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.User)
	assert.Equal(t, "storyteller", got.User.UserName)

	live, err := repo.ListLiveStories(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Len(t, live, 1)

	mine, err := repo.ListStoriesByUser(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.SetActive(ctx, models.PromotionStory, story.ID, false))
	live, err = repo.ListLiveStories(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, live)
}
