// Package seed loads reference data and demo content into the database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"medialane/internal/models"
	"medialane/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var catalogYAML []byte

type planEntry struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Duration int     `yaml:"duration"`
}

// CatalogFile is the shape of catalog.yaml.
type CatalogFile struct {
	Categories []models.CategoryName `yaml:"categories"`
	AdsPlans   []planEntry           `yaml:"adsPlans"`
	StoryPlans []planEntry           `yaml:"storyPlans"`
}

// LoadCatalog parses a catalog document and rejects unknown categories and
// unusable plans.
func LoadCatalog(raw []byte) (*CatalogFile, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, name := range file.Categories {
		if !name.Valid() {
			return nil, fmt.Errorf("catalog: unknown category %q", name)
		}
	}
	for _, plan := range append(append([]planEntry{}, file.AdsPlans...), file.StoryPlans...) {
		if plan.Name == "" || plan.Price <= 0 || plan.Duration <= 0 {
			return nil, fmt.Errorf("catalog: invalid plan %+v", plan)
		}
	}
	return &file, nil
}

// Catalog inserts the embedded categories and promotion plans. Rows that
// already exist by name are left untouched, so it is safe on every start.
func Catalog(ctx context.Context, db *gorm.DB) error {
	file, err := LoadCatalog(catalogYAML)
	if err != nil {
		return err
	}

	if err := repository.NewCategoryRepository(db).Ensure(ctx, file.Categories...); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	ads := make([]models.AdsPlan, 0, len(file.AdsPlans))
	for _, p := range file.AdsPlans {
		ads = append(ads, models.AdsPlan{Name: p.Name, Price: p.Price, Duration: p.Duration, Active: true})
	}
	stories := make([]models.StoryPlan, 0, len(file.StoryPlans))
	for _, p := range file.StoryPlans {
		stories = append(stories, models.StoryPlan{Name: p.Name, Price: p.Price, Duration: p.Duration, Active: true})
	}
	if err := repository.NewPromotionRepository(db).EnsurePlans(ctx, ads, stories); err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}
	return nil
}
