package repository

import (
	"context"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines persistence operations for video categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name models.CategoryName) (*models.Category, error)
	// Ensure inserts any missing categories and leaves existing ones untouched.
	Ensure(ctx context.Context, names ...models.CategoryName) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	})
	return categories, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	found, err := first(r.db.WithContext(ctx), &category, id)
	if err != nil || !found {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name models.CategoryName) (*models.Category, error) {
	var category models.Category
	found, err := first(r.db.WithContext(ctx).Where("name = ?", name), &category)
	if err != nil || !found {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Ensure(ctx context.Context, names ...models.CategoryName) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.Category, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Category{Name: name})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.CategoriesKey)
	return nil
}
