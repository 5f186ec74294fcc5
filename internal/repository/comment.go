package repository

import (
	"context"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment, articleSlug string) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment, articleSlug string) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ArticleKey(articleSlug))
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	found, err := first(r.db.WithContext(ctx).Preload("User").Preload("Article"), &comment, id)
	if err != nil || !found {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID uint, limit, offset int) ([]*models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("article_id = ?", articleID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("article_id = ?", articleID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Update("body", comment.Body).Error
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return err
	}
	if comment.Article != nil {
		cache.Invalidate(ctx, cache.ArticleKey(comment.Article.Slug))
	}
	return nil
}
