package service

import (
	"strings"
	"testing"

	"medialane/internal/auth"
	"medialane/internal/featureflags"
	"medialane/internal/models"
	"medialane/internal/repository"
	"medialane/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

var longSummary = strings.Repeat("A summary that is long enough to pass validation. ", 3)

type services struct {
	db         *gorm.DB
	articles   *ArticleService
	videos     *VideoService
	comments   *CommentService
	reactions  *ReactionService
	shares     *ShareService
	rates      *RateService
	playlists  *PlaylistService
	promotions *PromotionService
	users      *UserService
	feed       *FeedService
}

func newServices(t *testing.T, flags string) *services {
	t.Helper()
	db := testutil.NewTestDB(t)
	manager := featureflags.NewManager(flags)

	articles := NewArticleService(repository.NewArticleRepository(db), manager)
	videos := NewVideoService(repository.NewVideoRepository(db), repository.NewCategoryRepository(db), manager)
	users := NewUserService(repository.NewUserRepository(db), auth.NewTokenManager(testSecret)).
		WithHashCost(bcrypt.MinCost)
	return &services{
		db:         db,
		articles:   articles,
		videos:     videos,
		comments:   NewCommentService(repository.NewCommentRepository(db), articles),
		reactions:  NewReactionService(repository.NewLikeRepository(db), repository.NewBookmarkRepository(db), articles),
		shares:     NewShareService(repository.NewShareRepository(db), videos),
		rates:      NewRateService(repository.NewRateRepository(db), videos),
		playlists:  NewPlaylistService(repository.NewPlaylistRepository(db), videos),
		promotions: NewPromotionService(repository.NewPromotionRepository(db)),
		users:      users,
		feed:       NewFeedService(articles, videos),
	}
}

func actorFor(u *models.User) Actor {
	return Actor{ID: u.ID, UserName: u.UserName, Role: u.Role}
}

func assertAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error, fields ...string) {
	t.Helper()
	assertAppError(t, err, 400, models.CodeValidation)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	got := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		got = append(got, f.Field)
	}
	for _, field := range fields {
		assert.Contains(t, got, field)
	}
}
