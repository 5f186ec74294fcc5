package repository

import (
	"context"
	"testing"

	"medialane/internal/models"
	"medialane/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_GetBySlugWithCounts(t *testing.T) {
	db, owner, category := newFixtureDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	viewer := testutil.CreateUser(t, db, "viewer", models.RoleViewerClient)
	video := createVideo(t, db, owner, category, "clip", true)
	require.NoError(t, db.Create(&models.Share{UserID: viewer.ID, VideoID: video.ID}).Error)
	require.NoError(t, db.Create(&models.Playlist{Slug: "mix", Title: "Mix", UserID: viewer.ID, VideoID: video.ID}).Error)
	require.NoError(t, db.Create(&models.Playlist{Slug: "fav", Title: "Fav", UserID: viewer.ID, VideoID: video.ID}).Error)

	got, err := repo.GetBySlug(ctx, "clip")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.SharesCount)
	assert.Equal(t, 2, got.PlaylistsCount)
	require.NotNil(t, got.Category)
	assert.Equal(t, models.CategoryMusic, got.Category.Name)
	require.NotNil(t, got.User)
	assert.Equal(t, owner.ID, got.User.ID)

	missing, err := repo.GetBySlug(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVideoRepository_ListFilters(t *testing.T) {
	db, owner, music := newFixtureDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()
	news := testutil.CreateCategory(t, db, models.CategoryNews)

	createVideo(t, db, owner, music, "song", true, "live")
	createVideo(t, db, owner, news, "report", true, "daily")
	createVideo(t, db, owner, news, "pending", false, "daily")

	items, total, err := repo.List(ctx, VideoFilter{Status: StatusActive, CategoryID: news.ID}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "report", items[0].Slug)

	_, total, err = repo.List(ctx, VideoFilter{Tag: "daily"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = repo.List(ctx, VideoFilter{Status: StatusInactive}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	items, _, err = repo.List(ctx, VideoFilter{Search: "song"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "song", items[0].Slug)
}

func TestVideoRepository_SetActiveAndDelete(t *testing.T) {
	db, owner, category := newFixtureDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	video := createVideo(t, db, owner, category, "toggle", false)
	require.NoError(t, repo.SetActive(ctx, video, true))
	assert.ErrorIs(t, repo.SetActive(ctx, video, true), ErrNoChange)

	require.NoError(t, db.Create(&models.Share{UserID: owner.ID, VideoID: video.ID}).Error)
	require.NoError(t, repo.Delete(ctx, video))

	gone, err := repo.GetByID(ctx, video.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
	var shares int64
	require.NoError(t, db.Model(&models.Share{}).Count(&shares).Error)
	assert.Zero(t, shares)
}

func TestCategoryRepository_Ensure(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Ensure(ctx, models.CategoryNames...))
	require.NoError(t, repo.Ensure(ctx, models.CategoryMusic, models.CategoryNews))

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(models.CategoryNames))

	music, err := repo.GetByName(ctx, models.CategoryMusic)
	require.NoError(t, err)
	require.NotNil(t, music)

	byID, err := repo.GetByID(ctx, music.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryMusic, byID.Name)

	none, err := repo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, none)
}
