package repository

import (
	"context"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for article likes.
type LikeRepository interface {
	// Like records a like, returning ErrDuplicate if the user already liked the article.
	Like(ctx context.Context, userID uint, article *models.Article) (*models.Like, error)
	// Unlike removes a like, returning ErrNotFound if there was none.
	Unlike(ctx context.Context, userID uint, article *models.Article) error
	IsLiked(ctx context.Context, userID, articleID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error)
}

// BookmarkRepository defines persistence operations for article bookmarks.
type BookmarkRepository interface {
	Bookmark(ctx context.Context, userID uint, article *models.Article) (*models.Bookmark, error)
	Unbookmark(ctx context.Context, userID uint, article *models.Article) error
	IsBookmarked(ctx context.Context, userID, articleID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository returns a new BookmarkRepository implementation.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// addReaction inserts row for (userID, article) unless one exists. The article
// row is locked so concurrent requests for the same pair serialize.
func addReaction(ctx context.Context, db *gorm.DB, row any, userID uint, article *models.Article) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Article
		found, err := first(tx.Clauses(forUpdate()).Select("id"), &locked, article.ID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		var n int64
		if err := tx.Model(row).Where("user_id = ? AND article_id = ?", userID, article.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return tx.Omit("Article", "User").Create(row).Error
	})
	if err != nil {
		return translateWriteError(err)
	}
	cache.Invalidate(ctx, cache.ArticleKey(article.Slug))
	return nil
}

func removeReaction(ctx context.Context, db *gorm.DB, model any, userID uint, article *models.Article) error {
	res := db.WithContext(ctx).Where("user_id = ? AND article_id = ?", userID, article.ID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cache.Invalidate(ctx, cache.ArticleKey(article.Slug))
	return nil
}

func hasReaction(ctx context.Context, db *gorm.DB, model any, userID, articleID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where("user_id = ? AND article_id = ?", userID, articleID).Count(&n).Error
	return n > 0, err
}

// listReactions pages a user's reactions with their articles, newest first.
func listReactions[T any](ctx context.Context, db *gorm.DB, userID uint, limit, offset int) ([]*T, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []*T
	err := db.WithContext(ctx).
		Preload("Article", func(db *gorm.DB) *gorm.DB { return withArticleCounts(db) }).
		Preload("Article.User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *likeRepository) Like(ctx context.Context, userID uint, article *models.Article) (*models.Like, error) {
	like := &models.Like{UserID: userID, ArticleID: article.ID}
	if err := addReaction(ctx, r.db, like, userID, article); err != nil {
		return nil, err
	}
	return like, nil
}

func (r *likeRepository) Unlike(ctx context.Context, userID uint, article *models.Article) error {
	return removeReaction(ctx, r.db, &models.Like{}, userID, article)
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	return hasReaction(ctx, r.db, &models.Like{}, userID, articleID)
}

func (r *likeRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error) {
	return listReactions[models.Like](ctx, r.db, userID, limit, offset)
}

func (r *bookmarkRepository) Bookmark(ctx context.Context, userID uint, article *models.Article) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{UserID: userID, ArticleID: article.ID}
	if err := addReaction(ctx, r.db, bookmark, userID, article); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (r *bookmarkRepository) Unbookmark(ctx context.Context, userID uint, article *models.Article) error {
	return removeReaction(ctx, r.db, &models.Bookmark{}, userID, article)
}

func (r *bookmarkRepository) IsBookmarked(ctx context.Context, userID, articleID uint) (bool, error) {
	return hasReaction(ctx, r.db, &models.Bookmark{}, userID, articleID)
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, int64, error) {
	return listReactions[models.Bookmark](ctx, r.db, userID, limit, offset)
}
