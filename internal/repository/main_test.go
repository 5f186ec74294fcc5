package repository

import (
	"testing"

	"medialane/internal/models"
	"medialane/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func createArticle(t *testing.T, db *gorm.DB, owner *models.User, slug string, active bool, tags ...string) *models.Article {
	t.Helper()
	article := &models.Article{
		Slug:    slug,
		Title:   "Title " + slug,
		Summary: "Summary of " + slug,
		Body:    "Body of " + slug,
		Tags:    tags,
		Reads:   1,
		Active:  active,
		UserID:  owner.ID,
	}
	require.NoError(t, db.Omit("User").Create(article).Error)
	return article
}

func createVideo(t *testing.T, db *gorm.DB, owner *models.User, category *models.Category, slug string, active bool, tags ...string) *models.Video {
	t.Helper()
	video := &models.Video{
		Slug:       slug,
		Link:       "https://videos.example.com/" + slug,
		Title:      "Video " + slug,
		Tags:       tags,
		Active:     active,
		Shared:     true,
		CategoryID: category.ID,
		UserID:     owner.ID,
	}
	require.NoError(t, db.Omit("User", "Category").Create(video).Error)
	return video
}

func newFixtureDB(t *testing.T) (*gorm.DB, *models.User, *models.Category) {
	t.Helper()
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleVideoClient)
	category := testutil.CreateCategory(t, db, models.CategoryMusic)
	return db, owner, category
}
