package database

import "medialane/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables come before the tables that point at them.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Video{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Share{},
		&models.Rate{},
		&models.Playlist{},
		&models.AdsPlan{},
		&models.StoryPlan{},
		&models.Ads{},
		&models.Story{},
	}
}
