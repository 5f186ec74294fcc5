package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleFilter narrows article listings. Zero values do not filter.
type ArticleFilter struct {
	Search   string
	Tag      string
	Status   Status
	UserID   uint
	Featured bool
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*models.Article, int64, error)
	MostLiked(ctx context.Context, limit int) ([]*models.Article, error)
	Tags(ctx context.Context) ([]string, error)
	Update(ctx context.Context, article *models.Article, previousSlug string) error
	Delete(ctx context.Context, article *models.Article) error
	SetActive(ctx context.Context, article *models.Article, active bool) error
	SetFeatured(ctx context.Context, article *models.Article, featured bool) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// withArticleCounts selects the derived like, comment and bookmark counts.
func withArticleCounts(db *gorm.DB) *gorm.DB {
	return db.Select("articles.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.article_id = articles.id) AS bookmarks_count")
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error; err != nil {
		return translateWriteError(err)
	}
	cache.Invalidate(ctx, cache.ArticleTagsKey)
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	found, err := first(r.db.WithContext(ctx).Scopes(withArticleCounts).Preload("User"), &article, "articles.id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := cache.Aside(ctx, cache.ArticleKey(slug), &article, cache.ArticleTTL, func() error {
		return firstOrMiss(r.db.WithContext(ctx).Scopes(withArticleCounts).Preload("User"),
			&article, "articles.slug = ?", slug)
	})
	if errors.Is(err, errMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (f ArticleFilter) scope(db *gorm.DB) *gorm.DB {
	db = f.Status.apply(db, "articles.active")
	if f.UserID != 0 {
		db = db.Where("articles.user_id = ?", f.UserID)
	}
	if f.Featured {
		db = db.Where("articles.featured = ?", true)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		db = db.Where("("+likeClause("articles.title")+" OR "+likeClause("articles.summary")+")", pattern, pattern)
	}
	if f.Tag != "" {
		db = db.Where(likeClause("articles.tags"), tagPattern(f.Tag))
	}
	return db
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*models.Article, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Article{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Scopes(withArticleCounts, filter.scope).
		Preload("User").
		Order("articles.created_at DESC, articles.id DESC").
		Limit(limit).Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) MostLiked(ctx context.Context, limit int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Scopes(withArticleCounts).
		Preload("User").
		Where("articles.active = ?", true).
		Order("likes_count DESC, articles.id DESC").
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

// Tags returns the distinct tags of active articles, sorted.
func (r *articleRepository) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	err := cache.Aside(ctx, cache.ArticleTagsKey, &tags, cache.TagsTTL, func() error {
		var rows []models.Article
		if err := r.db.WithContext(ctx).Select("tags").Where("active = ?", true).Find(&rows).Error; err != nil {
			return err
		}
		seen := make(map[string]struct{})
		tags = []string{}
		for _, row := range rows {
			for _, tag := range row.Tags {
				key := strings.ToLower(tag)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				tags = append(tags, tag)
			}
		}
		sort.Strings(tags)
		return nil
	})
	return tags, err
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article, previousSlug string) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error; err != nil {
		return translateWriteError(err)
	}
	cache.InvalidateArticle(ctx, previousSlug, article.Slug)
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&models.Like{}, &models.Bookmark{}, &models.Comment{}} {
			if err := tx.Where("article_id = ?", article.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Article{}, article.ID).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}

func (r *articleRepository) SetActive(ctx context.Context, article *models.Article, active bool) error {
	if err := setFlag(ctx, r.db, &models.Article{}, article.ID, "active", active); err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}

func (r *articleRepository) SetFeatured(ctx context.Context, article *models.Article, featured bool) error {
	if err := setFlag(ctx, r.db, &models.Article{}, article.ID, "featured", featured); err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}
