package repository

import (
	"context"
	"math"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
)

// RateSummary is the denormalized rating aggregate stored on a video.
type RateSummary struct {
	AvgRate     float64 `json:"avgRate"`
	TotalRaters int     `json:"totalRaters"`
}

// RateRepository defines persistence operations for video ratings.
type RateRepository interface {
	// Rate stores count for video and recomputes the video's aggregate in the
	// same transaction. A known user's existing rate is updated in place;
	// anonymous rates (userID nil) always add a row.
	Rate(ctx context.Context, userID *uint, video *models.Video, count int) (*models.Rate, RateSummary, error)
	FindByUser(ctx context.Context, userID, videoID uint) (*models.Rate, error)
}

type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository returns a new RateRepository implementation.
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Rate(ctx context.Context, userID *uint, video *models.Video, count int) (*models.Rate, RateSummary, error) {
	var (
		rate    models.Rate
		summary RateSummary
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Video
		found, err := first(tx.Clauses(forUpdate()).Select("id"), &locked, video.ID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		existing := false
		if userID != nil {
			existing, err = first(tx.Where("user_id = ? AND video_id = ?", *userID, video.ID), &rate)
			if err != nil {
				return err
			}
		}
		if existing {
			rate.Count = count
			if err := tx.Model(&rate).Update("count", count).Error; err != nil {
				return err
			}
		} else {
			rate = models.Rate{UserID: userID, VideoID: video.ID, Count: count}
			if err := tx.Omit("Video").Create(&rate).Error; err != nil {
				return err
			}
		}

		summary, err = aggregateRates(tx, video.ID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Video{}).Where("id = ?", video.ID).Updates(map[string]any{
			"avg_rate":     summary.AvgRate,
			"total_raters": summary.TotalRaters,
		}).Error
	})
	if err != nil {
		return nil, RateSummary{}, err
	}
	cache.InvalidateVideo(ctx, video.Slug)
	return &rate, summary, nil
}

// aggregateRates computes sum(count)/raters over every rate of a video,
// rounded to two decimals.
func aggregateRates(tx *gorm.DB, videoID uint) (RateSummary, error) {
	var row struct {
		Raters int64
		Total  int64
	}
	err := tx.Model(&models.Rate{}).
		Select("COUNT(*) AS raters, COALESCE(SUM(count), 0) AS total").
		Where("video_id = ?", videoID).
		Group("video_id").
		Scan(&row).Error
	if err != nil {
		return RateSummary{}, err
	}
	summary := RateSummary{TotalRaters: int(row.Raters)}
	if row.Raters > 0 {
		summary.AvgRate = math.Round(float64(row.Total)/float64(row.Raters)*100) / 100
	}
	return summary, nil
}

func (r *rateRepository) FindByUser(ctx context.Context, userID, videoID uint) (*models.Rate, error) {
	var rate models.Rate
	found, err := first(r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID), &rate)
	if err != nil || !found {
		return nil, err
	}
	return &rate, nil
}
