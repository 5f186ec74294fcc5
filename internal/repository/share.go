package repository

import (
	"context"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
)

// ShareRepository defines persistence operations for video shares.
type ShareRepository interface {
	// Share records a share, returning ErrDuplicate if the user already
	// shared the video.
	Share(ctx context.Context, userID uint, video *models.Video) (*models.Share, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Share, int64, error)
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository returns a new ShareRepository implementation.
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Share(ctx context.Context, userID uint, video *models.Video) (*models.Share, error) {
	share := &models.Share{UserID: userID, VideoID: video.ID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Video
		found, err := first(tx.Clauses(forUpdate()).Select("id"), &locked, video.ID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		var n int64
		if err := tx.Model(&models.Share{}).
			Where("user_id = ? AND video_id = ?", userID, video.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return tx.Omit("Video", "User").Create(share).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	cache.InvalidateVideo(ctx, video.Slug)
	return share, nil
}

func (r *shareRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Share, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Share{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var shares []*models.Share
	err := r.db.WithContext(ctx).
		Preload("Video", func(db *gorm.DB) *gorm.DB { return withVideoCounts(db) }).
		Preload("Video.Category").
		Preload("Video.User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&shares).Error
	if err != nil {
		return nil, 0, err
	}
	return shares, total, nil
}
