package repository

import (
	"context"
	"fmt"
	"time"

	"medialane/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PromotionRepository defines persistence operations for ads, stories and
// their plans.
type PromotionRepository interface {
	ListAdsPlans(ctx context.Context, activeOnly bool) ([]models.AdsPlan, error)
	ListStoryPlans(ctx context.Context, activeOnly bool) ([]models.StoryPlan, error)
	GetAdsPlan(ctx context.Context, id uint) (*models.AdsPlan, error)
	GetStoryPlan(ctx context.Context, id uint) (*models.StoryPlan, error)
	CreateAdsPlan(ctx context.Context, plan *models.AdsPlan) error
	CreateStoryPlan(ctx context.Context, plan *models.StoryPlan) error
	// EnsurePlans inserts plans whose name is not taken yet.
	EnsurePlans(ctx context.Context, ads []models.AdsPlan, stories []models.StoryPlan) error

	SlugExists(ctx context.Context, kind models.PromotionKind, slug string) (bool, error)
	CreateAds(ctx context.Context, ads *models.Ads) error
	CreateStory(ctx context.Context, story *models.Story) error
	GetAds(ctx context.Context, id uint) (*models.Ads, error)
	GetStory(ctx context.Context, id uint) (*models.Story, error)
	// ListLiveAds returns active ads whose window contains now.
	ListLiveAds(ctx context.Context, now time.Time) ([]*models.Ads, error)
	ListLiveStories(ctx context.Context, now time.Time) ([]*models.Story, error)
	ListAdsByUser(ctx context.Context, userID uint) ([]*models.Ads, error)
	ListStoriesByUser(ctx context.Context, userID uint) ([]*models.Story, error)
	SetActive(ctx context.Context, kind models.PromotionKind, id uint, active bool) error
	Delete(ctx context.Context, kind models.PromotionKind, id uint) error
}

type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository returns a new PromotionRepository implementation.
func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func promotionModel(kind models.PromotionKind) (any, error) {
	switch kind {
	case models.PromotionAds:
		return &models.Ads{}, nil
	case models.PromotionStory:
		return &models.Story{}, nil
	}
	return nil, fmt.Errorf("unknown promotion kind %q", kind)
}

func listPlans[T any](ctx context.Context, db *gorm.DB, activeOnly bool) ([]T, error) {
	query := db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var plans []T
	err := query.Order("price ASC, id ASC").Find(&plans).Error
	return plans, err
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uint, preloads ...string) (*T, error) {
	query := db.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	var row T
	found, err := first(query, &row, id)
	if err != nil || !found {
		return nil, err
	}
	return &row, nil
}

func listLive[T any](ctx context.Context, db *gorm.DB, now time.Time) ([]*T, error) {
	var rows []*T
	err := db.WithContext(ctx).
		Preload("Plan").
		Preload("User").
		Where("active = ? AND start_date <= ? AND end_date > ?", true, now, now).
		Order("start_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func listByUser[T any](ctx context.Context, db *gorm.DB, userID uint) ([]*T, error) {
	var rows []*T
	err := db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *promotionRepository) ListAdsPlans(ctx context.Context, activeOnly bool) ([]models.AdsPlan, error) {
	return listPlans[models.AdsPlan](ctx, r.db, activeOnly)
}

func (r *promotionRepository) ListStoryPlans(ctx context.Context, activeOnly bool) ([]models.StoryPlan, error) {
	return listPlans[models.StoryPlan](ctx, r.db, activeOnly)
}

func (r *promotionRepository) GetAdsPlan(ctx context.Context, id uint) (*models.AdsPlan, error) {
	return getByID[models.AdsPlan](ctx, r.db, id)
}

func (r *promotionRepository) GetStoryPlan(ctx context.Context, id uint) (*models.StoryPlan, error) {
	return getByID[models.StoryPlan](ctx, r.db, id)
}

func (r *promotionRepository) CreateAdsPlan(ctx context.Context, plan *models.AdsPlan) error {
	return translateWriteError(r.db.WithContext(ctx).Create(plan).Error)
}

func (r *promotionRepository) CreateStoryPlan(ctx context.Context, plan *models.StoryPlan) error {
	return translateWriteError(r.db.WithContext(ctx).Create(plan).Error)
}

func (r *promotionRepository) EnsurePlans(ctx context.Context, ads []models.AdsPlan, stories []models.StoryPlan) error {
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ads) > 0 {
			if err := tx.Clauses(onConflict).Create(&ads).Error; err != nil {
				return err
			}
		}
		if len(stories) > 0 {
			if err := tx.Clauses(onConflict).Create(&stories).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *promotionRepository) SlugExists(ctx context.Context, kind models.PromotionKind, slug string) (bool, error) {
	model, err := promotionModel(kind)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(model).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *promotionRepository) CreateAds(ctx context.Context, ads *models.Ads) error {
	return translateWriteError(r.db.WithContext(ctx).Omit(clause.Associations).Create(ads).Error)
}

func (r *promotionRepository) CreateStory(ctx context.Context, story *models.Story) error {
	return translateWriteError(r.db.WithContext(ctx).Omit(clause.Associations).Create(story).Error)
}

func (r *promotionRepository) GetAds(ctx context.Context, id uint) (*models.Ads, error) {
	return getByID[models.Ads](ctx, r.db, id, "Plan", "User")
}

func (r *promotionRepository) GetStory(ctx context.Context, id uint) (*models.Story, error) {
	return getByID[models.Story](ctx, r.db, id, "Plan", "User")
}

func (r *promotionRepository) ListLiveAds(ctx context.Context, now time.Time) ([]*models.Ads, error) {
	return listLive[models.Ads](ctx, r.db, now)
}

func (r *promotionRepository) ListLiveStories(ctx context.Context, now time.Time) ([]*models.Story, error) {
	return listLive[models.Story](ctx, r.db, now)
}

func (r *promotionRepository) ListAdsByUser(ctx context.Context, userID uint) ([]*models.Ads, error) {
	return listByUser[models.Ads](ctx, r.db, userID)
}

func (r *promotionRepository) ListStoriesByUser(ctx context.Context, userID uint) ([]*models.Story, error) {
	return listByUser[models.Story](ctx, r.db, userID)
}

func (r *promotionRepository) SetActive(ctx context.Context, kind models.PromotionKind, id uint, active bool) error {
	model, err := promotionModel(kind)
	if err != nil {
		return err
	}
	return setFlag(ctx, r.db, model, id, "active", active)
}

func (r *promotionRepository) Delete(ctx context.Context, kind models.PromotionKind, id uint) error {
	model, err := promotionModel(kind)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
