package repository

import (
	"context"
	"testing"

	"medialane/internal/cache"
	"medialane/internal/models"
	"medialane/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_LikeOnce(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	reader := testutil.CreateUser(t, db, "reader", models.RoleViewerClient)
	article := createArticle(t, db, owner, "likeable", true)

	like, err := repo.Like(ctx, reader.ID, article)
	require.NoError(t, err)
	assert.NotZero(t, like.ID)

	_, err = repo.Like(ctx, reader.ID, article)
	assert.ErrorIs(t, err, ErrDuplicate)

	liked, err := repo.IsLiked(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	likes, total, err := repo.ListByUser(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, likes, 1)
	require.NotNil(t, likes[0].Article)
	assert.Equal(t, "likeable", likes[0].Article.Slug)
	assert.Equal(t, 1, likes[0].Article.LikesCount)

	require.NoError(t, repo.Unlike(ctx, reader.ID, article))
	assert.ErrorIs(t, repo.Unlike(ctx, reader.ID, article), ErrNotFound)

	_, err = repo.Like(ctx, reader.ID, &models.Article{ID: 9999, Slug: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookmarkRepository(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewBookmarkRepository(db)
	ctx := context.Background()
	article := createArticle(t, db, owner, "keep", true)

	_, err := repo.Bookmark(ctx, owner.ID, article)
	require.NoError(t, err)
	_, err = repo.Bookmark(ctx, owner.ID, article)
	assert.ErrorIs(t, err, ErrDuplicate)

	marked, err := repo.IsBookmarked(ctx, owner.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, marked)

	_, total, err := repo.ListByUser(ctx, owner.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	require.NoError(t, repo.Unbookmark(ctx, owner.ID, article))
	assert.ErrorIs(t, repo.Unbookmark(ctx, owner.ID, article), ErrNotFound)
}

func TestShareRepository(t *testing.T) {
	db, owner, category := newFixtureDB(t)
	repo := NewShareRepository(db)
	ctx := context.Background()
	viewer := testutil.CreateUser(t, db, "viewer", models.RoleViewerClient)
	video := createVideo(t, db, owner, category, "shareable", true)

	_, err := repo.Share(ctx, viewer.ID, video)
	require.NoError(t, err)
	_, err = repo.Share(ctx, viewer.ID, video)
	assert.ErrorIs(t, err, ErrDuplicate)

	shares, total, err := repo.ListByUser(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, shares, 1)
	require.NotNil(t, shares[0].Video)
	assert.Equal(t, 1, shares[0].Video.SharesCount)
}

func TestRateRepository_Aggregate(t *testing.T) {
	db, owner, category := newFixtureDB(t)
	repo := NewRateRepository(db)
	ctx := context.Background()
	video := createVideo(t, db, owner, category, "rated", true)

	raters := []*models.User{
		testutil.CreateUser(t, db, "r1", models.RoleViewerClient),
		testutil.CreateUser(t, db, "r2", models.RoleViewerClient),
		testutil.CreateUser(t, db, "r3", models.RoleViewerClient),
	}
	var summary RateSummary
	for i, count := range []int{5, 3, 4} {
		id := raters[i].ID
		var err error
		_, summary, err = repo.Rate(ctx, &id, video, count)
		require.NoError(t, err)
	}
	assert.Equal(t, 4.0, summary.AvgRate)
	assert.Equal(t, 3, summary.TotalRaters)

	// Re-rating updates in place.
	id := raters[1].ID
	rate, summary, err := repo.Rate(ctx, &id, video, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rate.Count)
	assert.Equal(t, 3, summary.TotalRaters)
	assert.InDelta(t, 4.67, summary.AvgRate, 0.001)

	var rows int64
	require.NoError(t, db.Model(&models.Rate{}).Count(&rows).Error)
	assert.EqualValues(t, 3, rows)

	var stored models.Video
	require.NoError(t, db.First(&stored, video.ID).Error)
	assert.Equal(t, 3, stored.TotalRaters)
	assert.InDelta(t, 4.67, stored.AvgRate, 0.001)

	mine, err := repo.FindByUser(ctx, raters[1].ID, video.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, 5, mine.Count)
}

func TestRateRepository_AnonymousAddsRows(t *testing.T) {
	db, owner, category := newFixtureDB(t)
	repo := NewRateRepository(db)
	ctx := context.Background()
	video := createVideo(t, db, owner, category, "anon", true)

	_, _, err := repo.Rate(ctx, nil, video, 2)
	require.NoError(t, err)
	_, summary, err := repo.Rate(ctx, nil, video, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRaters)
	assert.Equal(t, 3.0, summary.AvgRate)
}

func TestPlaylistRepository_Groups(t *testing.T) {
	db, owner, category := newFixtureDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()
	intro := createVideo(t, db, owner, category, "intro", true)
	outro := createVideo(t, db, owner, category, "outro", true)

	require.NoError(t, repo.Add(ctx, &models.Playlist{Slug: "road-trip", Title: "Road Trip", UserID: owner.ID, VideoID: intro.ID}))
	require.NoError(t, repo.Add(ctx, &models.Playlist{Slug: "road-trip", Title: "Road Trip", UserID: owner.ID, VideoID: outro.ID}))
	require.NoError(t, repo.Add(ctx, &models.Playlist{Slug: "chill", Title: "Chill", UserID: owner.ID, VideoID: intro.ID}))
	assert.ErrorIs(t, repo.Add(ctx, &models.Playlist{Slug: "chill", Title: "Chill", UserID: owner.ID, VideoID: intro.ID}), ErrDuplicate)

	slug, err := repo.GroupSlug(ctx, owner.ID, "Road Trip")
	require.NoError(t, err)
	assert.Equal(t, "road-trip", slug)
	slug, err = repo.GroupSlug(ctx, owner.ID, "Unknown")
	require.NoError(t, err)
	assert.Empty(t, slug)

	groups, err := repo.ListGroups(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Chill", groups[0].Title)
	assert.Len(t, groups[0].Videos, 1)
	assert.Equal(t, "Road Trip", groups[1].Title)
	assert.Len(t, groups[1].Videos, 2)

	require.NoError(t, repo.RemoveVideo(ctx, owner.ID, "road-trip", intro))
	assert.ErrorIs(t, repo.RemoveVideo(ctx, owner.ID, "road-trip", intro), ErrNotFound)
	group, err := repo.GetGroup(ctx, owner.ID, "road-trip")
	require.NoError(t, err)
	require.NotNil(t, group)
	require.Len(t, group.Videos, 1)
	assert.Equal(t, "outro", group.Videos[0].Slug)

	require.NoError(t, repo.DeleteGroup(ctx, owner.ID, "chill"))
	assert.ErrorIs(t, repo.DeleteGroup(ctx, owner.ID, "chill"), ErrNotFound)
	none, err := repo.GetGroup(ctx, owner.ID, "chill")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestPlaylistRepository_InvalidatesVideoCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, owner, category := newFixtureDB(t)
	videos := NewVideoRepository(db)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()
	video := createVideo(t, db, owner, category, "cached-clip", true)

	playlistsCount := func() int {
		t.Helper()
		got, err := videos.GetBySlug(ctx, video.Slug)
		require.NoError(t, err)
		require.NotNil(t, got)
		return got.PlaylistsCount
	}

	assert.Equal(t, 0, playlistsCount())
	assert.True(t, mr.Exists(cache.VideoKey(video.Slug)))

	require.NoError(t, repo.Add(ctx, &models.Playlist{Slug: "later", Title: "Later", UserID: owner.ID, VideoID: video.ID}))
	assert.False(t, mr.Exists(cache.VideoKey(video.Slug)))
	assert.Equal(t, 1, playlistsCount())

	require.NoError(t, repo.Add(ctx, &models.Playlist{Slug: "mix", Title: "Mix", UserID: owner.ID, VideoID: video.ID}))
	assert.Equal(t, 2, playlistsCount())

	require.NoError(t, repo.RemoveVideo(ctx, owner.ID, "later", video))
	assert.False(t, mr.Exists(cache.VideoKey(video.Slug)))
	assert.Equal(t, 1, playlistsCount())

	require.NoError(t, repo.DeleteGroup(ctx, owner.ID, "mix"))
	assert.False(t, mr.Exists(cache.VideoKey(video.Slug)))
	assert.Equal(t, 0, playlistsCount())
}
