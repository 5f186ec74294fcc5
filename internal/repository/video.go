package repository

import (
	"context"
	"errors"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoFilter narrows video listings. Zero values do not filter.
type VideoFilter struct {
	Search     string
	Tag        string
	CategoryID uint
	Status     Status
	UserID     uint
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	GetBySlug(ctx context.Context, slug string) (*models.Video, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter VideoFilter, limit, offset int) ([]*models.Video, int64, error)
	TopRated(ctx context.Context, limit int) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video, previousSlug string) error
	Delete(ctx context.Context, video *models.Video) error
	SetActive(ctx context.Context, video *models.Video, active bool) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// withVideoCounts selects the derived share and playlist counts.
func withVideoCounts(db *gorm.DB) *gorm.DB {
	return db.Select("videos.*, " +
		"(SELECT COUNT(*) FROM shares WHERE shares.video_id = videos.id) AS shares_count, " +
		"(SELECT COUNT(*) FROM playlists WHERE playlists.video_id = videos.id) AS playlists_count")
}

func videoDetails(db *gorm.DB) *gorm.DB {
	return db.Scopes(withVideoCounts).Preload("User").Preload("Category")
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return translateWriteError(r.db.WithContext(ctx).Omit(clause.Associations).Create(video).Error)
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	found, err := first(r.db.WithContext(ctx).Scopes(videoDetails), &video, "videos.id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) GetBySlug(ctx context.Context, slug string) (*models.Video, error) {
	var video models.Video
	err := cache.Aside(ctx, cache.VideoKey(slug), &video, cache.VideoTTL, func() error {
		return firstOrMiss(r.db.WithContext(ctx).Scopes(videoDetails), &video, "videos.slug = ?", slug)
	})
	if errors.Is(err, errMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (f VideoFilter) scope(db *gorm.DB) *gorm.DB {
	db = f.Status.apply(db, "videos.active")
	if f.UserID != 0 {
		db = db.Where("videos.user_id = ?", f.UserID)
	}
	if f.CategoryID != 0 {
		db = db.Where("videos.category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		db = db.Where("("+likeClause("videos.title")+" OR "+likeClause("videos.description")+")", pattern, pattern)
	}
	if f.Tag != "" {
		db = db.Where(likeClause("videos.tags"), tagPattern(f.Tag))
	}
	return db
}

func (r *videoRepository) List(ctx context.Context, filter VideoFilter, limit, offset int) ([]*models.Video, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Scopes(videoDetails, filter.scope).
		Order("videos.created_at DESC, videos.id DESC").
		Limit(limit).Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) TopRated(ctx context.Context, limit int) ([]*models.Video, error) {
	var videos []*models.Video
	err := r.db.WithContext(ctx).
		Scopes(videoDetails).
		Where("videos.active = ?", true).
		Order("videos.avg_rate DESC, videos.total_raters DESC, videos.id DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video, previousSlug string) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(video).Error; err != nil {
		return translateWriteError(err)
	}
	cache.InvalidateVideo(ctx, previousSlug, video.Slug)
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&models.Share{}, &models.Rate{}, &models.Playlist{}} {
			if err := tx.Where("video_id = ?", video.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Video{}, video.ID).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateVideo(ctx, video.Slug)
	return nil
}

func (r *videoRepository) SetActive(ctx context.Context, video *models.Video, active bool) error {
	if err := setFlag(ctx, r.db, &models.Video{}, video.ID, "active", active); err != nil {
		return err
	}
	cache.InvalidateVideo(ctx, video.Slug)
	return nil
}
