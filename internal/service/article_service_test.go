package service

import (
	"context"
	"net/http"
	"testing"

	"medialane/internal/models"
	"medialane/internal/repository"
	"medialane/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleService_Create(t *testing.T) {
	t.Parallel()
	svc := newServices(t, "auto_approve_articles=on")
	author := testutil.CreateUser(t, svc.db, "writer", models.RoleViewerClient)
	ctx := context.Background()

	t.Run("collects every failed field", func(t *testing.T) {
		_, err := svc.articles.Create(ctx, actorFor(author), CreateArticleInput{Summary: "too short"})
		assertValidationError(t, err, "title", "summary", "body")
	})

	t.Run("derives slug and read time", func(t *testing.T) {
		article, err := svc.articles.Create(ctx, actorFor(author), CreateArticleInput{
			Title:   "Hello World",
			Summary: longSummary,
			Body:    "Some body text.",
			Tags:    []string{"Go", "go", " api "},
		})
		require.NoError(t, err)
		assert.Equal(t, "hello-world", article.Slug)
		assert.GreaterOrEqual(t, article.Reads, 1)
		assert.True(t, article.Active)
		assert.Equal(t, []string{"Go", "api"}, article.Tags)

		again, err := svc.articles.Create(ctx, actorFor(author), CreateArticleInput{
			Title:   "Hello World",
			Summary: longSummary,
			Body:    "Another body.",
		})
		require.NoError(t, err)
		assert.Equal(t, "hello-world-2", again.Slug)
	})
}

func TestArticleService_PendingVisibility(t *testing.T) {
	t.Parallel()
	svc := newServices(t, "")
	author := testutil.CreateUser(t, svc.db, "writer", models.RoleViewerClient)
	other := testutil.CreateUser(t, svc.db, "reader", models.RoleViewerClient)
	admin := testutil.CreateUser(t, svc.db, "moderator", models.RoleAdmin)
	ctx := context.Background()

	article, err := svc.articles.Create(ctx, actorFor(author), CreateArticleInput{
		Title:   "Pending Piece",
		Summary: longSummary,
		Body:    "Waiting for review.",
	})
	require.NoError(t, err)
	assert.False(t, article.Active)

	_, err = svc.articles.Get(ctx, Actor{}, article.Slug)
	assertAppError(t, err, http.StatusNotFound, "ARTICLE_NOT_FOUND")
	_, err = svc.articles.Get(ctx, actorFor(other), article.Slug)
	assertAppError(t, err, http.StatusNotFound, "ARTICLE_NOT_FOUND")

	_, err = svc.articles.Get(ctx, actorFor(author), article.Slug)
	require.NoError(t, err)
	_, err = svc.articles.Get(ctx, actorFor(admin), article.Slug)
	require.NoError(t, err)

	page, err := svc.articles.List(ctx, ListArticlesInput{PageQuery: PageQuery{Page: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)

	page, err = svc.articles.AdminList(ctx, ListArticlesInput{Status: repository.StatusInactive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)
}

func TestArticleService_Toggles(t *testing.T) {
	t.Parallel()
	svc := newServices(t, "")
	author := testutil.CreateUser(t, svc.db, "writer", models.RoleViewerClient)
	ctx := context.Background()

	article, err := svc.articles.Create(ctx, actorFor(author), CreateArticleInput{
		Title:   "Toggle Me",
		Summary: longSummary,
		Body:    "Body.",
	})
	require.NoError(t, err)

	_, err = svc.articles.SetActive(ctx, article.ID, false)
	assertAppError(t, err, http.StatusConflict, "ARTICLE_ALREADY_INACTIVE")

	approved, err := svc.articles.SetActive(ctx, article.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.Active)

	_, err = svc.articles.SetActive(ctx, article.ID, true)
	assertAppError(t, err, http.StatusConflict, "ARTICLE_ALREADY_ACTIVE")

	featured, err := svc.articles.SetFeatured(ctx, article.ID, true)
	require.NoError(t, err)
	assert.True(t, featured.Featured)
	_, err = svc.articles.SetFeatured(ctx, article.ID, true)
	assertAppError(t, err, http.StatusConflict, "ARTICLE_ALREADY_FEATURED")

	_, err = svc.articles.SetActive(ctx, 9999, true)
	assertAppError(t, err, http.StatusNotFound, "ARTICLE_NOT_FOUND")
}

func TestArticleService_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	svc := newServices(t, "auto_approve_articles=on")
	author := testutil.CreateUser(t, svc.db, "writer", models.RoleViewerClient)
	other := testutil.CreateUser(t, svc.db, "reader", models.RoleViewerClient)
	admin := testutil.CreateUser(t, svc.db, "moderator", models.RoleAdmin)
	ctx := context.Background()

	article, err := svc.articles.Create(ctx, actorFor(author), CreateArticleInput{
		Title:   "First Title",
		Summary: longSummary,
		Body:    "Body.",
	})
	require.NoError(t, err)

	title := "Second Title"
	_, err = svc.articles.Update(ctx, actorFor(other), article.Slug, UpdateArticleInput{Title: &title})
	assertAppError(t, err, http.StatusForbidden, models.CodeOwnershipRequired)

	updated, err := svc.articles.Update(ctx, actorFor(author), article.Slug, UpdateArticleInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "second-title", updated.Slug)
	assert.Equal(t, longSummary, updated.Summary)

	_, err = svc.articles.Get(ctx, Actor{}, "first-title")
	assertAppError(t, err, http.StatusNotFound, "ARTICLE_NOT_FOUND")

	err = svc.articles.Delete(ctx, actorFor(other), updated.Slug)
	assertAppError(t, err, http.StatusForbidden, models.CodeOwnershipRequired)
	require.NoError(t, svc.articles.Delete(ctx, actorFor(admin), updated.Slug))

	err = svc.articles.Delete(ctx, actorFor(author), updated.Slug)
	assertAppError(t, err, http.StatusNotFound, "ARTICLE_NOT_FOUND")
}

func TestVideoService_CreateAndList(t *testing.T) {
	t.Parallel()
	svc := newServices(t, "auto_approve_videos=on")
	creator := testutil.CreateUser(t, svc.db, "creator", models.RoleVideoClient)
	testutil.CreateCategory(t, svc.db, models.CategoryMusic)
	ctx := context.Background()

	_, err := svc.videos.Create(ctx, actorFor(creator), CreateVideoInput{Title: "Clip", Link: "not a url"})
	assertValidationError(t, err, "link", "category")

	_, err = svc.videos.Create(ctx, actorFor(creator), CreateVideoInput{
		Title:    "Clip",
		Link:     "https://videos.example.com/clip",
		Category: models.CategoryGaming,
	})
	assertAppError(t, err, http.StatusNotFound, "CATEGORY_NOT_FOUND")

	video, err := svc.videos.Create(ctx, actorFor(creator), CreateVideoInput{
		Title:    "Live Session",
		Link:     "https://videos.example.com/live",
		Category: models.CategoryMusic,
		Tags:     []string{"live"},
	})
	require.NoError(t, err)
	assert.Equal(t, "live-session", video.Slug)
	assert.True(t, video.Active)
	assert.True(t, video.Shared)
	require.NotNil(t, video.Category)
	assert.Equal(t, models.CategoryMusic, video.Category.Name)

	page, err := svc.videos.List(ctx, ListVideosInput{Category: models.CategoryMusic})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)

	page, err = svc.videos.List(ctx, ListVideosInput{Category: models.CategoryNews})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)

	other := testutil.CreateUser(t, svc.db, "other", models.RoleVideoClient)
	title := "Hijacked"
	_, err = svc.videos.Update(ctx, actorFor(other), video.Slug, UpdateVideoInput{Title: &title})
	assertAppError(t, err, http.StatusForbidden, models.CodeOwnershipRequired)

	_, err = svc.videos.SetActive(ctx, video.ID, true)
	assertAppError(t, err, http.StatusConflict, "VIDEO_ALREADY_ACTIVE")
}
