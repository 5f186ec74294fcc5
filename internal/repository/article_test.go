package repository

import (
	"context"
	"regexp"
	"testing"

	"medialane/internal/models"
	"medialane/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewArticleRepository(db)

	article := &models.Article{Slug: "hello", Title: "Hello", Summary: "s", Body: "b", UserID: 1, Active: true}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "articles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), article))
	assert.EqualValues(t, 1, article.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_SetActiveLocksRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewArticleRepository(db)
	article := &models.Article{ID: 5, Slug: "locked"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "articles" WHERE id = $1 FOR UPDATE`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"active"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.SetActive(context.Background(), article, true)
	assert.ErrorIs(t, err, ErrNoChange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_GetBySlugWithCounts(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader", models.RoleViewerClient)
	article := createArticle(t, db, owner, "counted", true)
	require.NoError(t, db.Create(&models.Like{UserID: reader.ID, ArticleID: article.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: owner.ID, ArticleID: article.ID}).Error)
	require.NoError(t, db.Create(&models.Bookmark{UserID: reader.ID, ArticleID: article.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: reader.ID, ArticleID: article.ID, Body: "nice"}).Error)

	got, err := repo.GetBySlug(ctx, "counted")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.LikesCount)
	assert.Equal(t, 1, got.BookmarksCount)
	assert.Equal(t, 1, got.CommentsCount)
	require.NotNil(t, got.User)
	assert.Equal(t, "owner", got.User.UserName)

	byID, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Slug, byID.Slug)
	assert.Equal(t, got.LikesCount, byID.LikesCount)

	missing, err := repo.GetBySlug(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestArticleRepository_ListFilters(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	createArticle(t, db, owner, "go-tips", true, "Go", "backend")
	createArticle(t, db, owner, "rust-tips", true, "rust")
	createArticle(t, db, owner, "draft", false, "go")

	_, total, err := repo.List(ctx, ArticleFilter{Status: StatusActive}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	items, total, err := repo.List(ctx, ArticleFilter{Status: StatusActive, Tag: "go"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "go-tips", items[0].Slug)

	items, total, err = repo.List(ctx, ArticleFilter{Search: "RUST"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "rust-tips", items[0].Slug)

	items, total, err = repo.List(ctx, ArticleFilter{UserID: owner.ID}, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 2)
}

func TestArticleRepository_TagsAndToggles(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	article := createArticle(t, db, owner, "tagged", true, "go", "Web")
	createArticle(t, db, owner, "tagged-2", true, "GO", "api")
	createArticle(t, db, owner, "hidden", false, "secret")

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"api", "go", "Web"}, tags)

	require.NoError(t, repo.SetFeatured(ctx, article, true))
	assert.ErrorIs(t, repo.SetFeatured(ctx, article, true), ErrNoChange)

	featured, total, err := repo.List(ctx, ArticleFilter{Status: StatusActive, Featured: true}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, featured, 1)
	assert.Equal(t, "tagged", featured[0].Slug)

	require.NoError(t, repo.SetActive(ctx, article, false))
	stored, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestArticleRepository_UpdateAndDelete(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	article := createArticle(t, db, owner, "before", true)
	other := createArticle(t, db, owner, "taken", true)
	require.NoError(t, db.Create(&models.Like{UserID: owner.ID, ArticleID: article.ID}).Error)

	article.Slug = other.Slug
	assert.ErrorIs(t, repo.Update(ctx, article, "before"), ErrDuplicate)

	article.Slug = "after"
	article.Title = "After"
	require.NoError(t, repo.Update(ctx, article, "before"))
	got, err := repo.GetBySlug(ctx, "after")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "After", got.Title)

	exists, err := repo.SlugExists(ctx, "before")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Delete(ctx, article))
	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)

	gone, err := repo.GetByID(ctx, article.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestArticleRepository_MostLiked(t *testing.T) {
	db, owner, _ := newFixtureDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	reader := testutil.CreateUser(t, db, "reader", models.RoleViewerClient)
	quiet := createArticle(t, db, owner, "quiet", true)
	loud := createArticle(t, db, owner, "loud", true)
	require.NoError(t, db.Create(&models.Like{UserID: reader.ID, ArticleID: loud.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: owner.ID, ArticleID: loud.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: owner.ID, ArticleID: quiet.ID}).Error)

	top, err := repo.MostLiked(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "loud", top[0].Slug)
	assert.Equal(t, 2, top[0].LikesCount)
}
