package repository

import (
	"context"

	"medialane/internal/cache"
	"medialane/internal/models"

	"gorm.io/gorm"
)

// PlaylistRepository defines persistence operations for playlists. A logical
// playlist is every row sharing a user and title; they also share a slug.
type PlaylistRepository interface {
	// GroupSlug returns the slug of the user's playlist titled title, or "".
	GroupSlug(ctx context.Context, userID uint, title string) (string, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Add inserts entry, returning ErrDuplicate if the video is already in
	// that playlist. Writes invalidate the cached videos they touch.
	Add(ctx context.Context, entry *models.Playlist) error
	ListGroups(ctx context.Context, userID uint) ([]models.PlaylistGroup, error)
	GetGroup(ctx context.Context, userID uint, slug string) (*models.PlaylistGroup, error)
	DeleteGroup(ctx context.Context, userID uint, slug string) error
	RemoveVideo(ctx context.Context, userID uint, slug string, video *models.Video) error
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository returns a new PlaylistRepository implementation.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) GroupSlug(ctx context.Context, userID uint, title string) (string, error) {
	var entry models.Playlist
	found, err := first(r.db.WithContext(ctx).Select("slug").Where("user_id = ? AND title = ?", userID, title), &entry)
	if err != nil || !found {
		return "", err
	}
	return entry.Slug, nil
}

func (r *playlistRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *playlistRepository) Add(ctx context.Context, entry *models.Playlist) error {
	var locked models.Video
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := first(tx.Clauses(forUpdate()).Select("id", "slug"), &locked, entry.VideoID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}

		var n int64
		if err := tx.Model(&models.Playlist{}).
			Where("user_id = ? AND title = ? AND video_id = ?", entry.UserID, entry.Title, entry.VideoID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		return tx.Omit("Video", "User").Create(entry).Error
	})
	if err != nil {
		return translateWriteError(err)
	}
	cache.InvalidateVideo(ctx, locked.Slug)
	return nil
}

func (r *playlistRepository) entries(ctx context.Context, userID uint, slug string) ([]*models.Playlist, error) {
	query := r.db.WithContext(ctx).
		Preload("Video", func(db *gorm.DB) *gorm.DB { return withVideoCounts(db) }).
		Preload("Video.Category").
		Where("user_id = ?", userID)
	if slug != "" {
		query = query.Where("slug = ?", slug)
	}
	var rows []*models.Playlist
	err := query.Order("title ASC, created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

// groupPlaylists folds rows ordered by title into logical playlists.
func groupPlaylists(rows []*models.Playlist) []models.PlaylistGroup {
	groups := []models.PlaylistGroup{}
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Slug]
		if !ok {
			i = len(groups)
			index[row.Slug] = i
			groups = append(groups, models.PlaylistGroup{Slug: row.Slug, Title: row.Title, Videos: []*models.Video{}})
		}
		if row.Video != nil {
			groups[i].Videos = append(groups[i].Videos, row.Video)
		}
	}
	return groups
}

func (r *playlistRepository) ListGroups(ctx context.Context, userID uint) ([]models.PlaylistGroup, error) {
	rows, err := r.entries(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return groupPlaylists(rows), nil
}

func (r *playlistRepository) GetGroup(ctx context.Context, userID uint, slug string) (*models.PlaylistGroup, error) {
	rows, err := r.entries(ctx, userID, slug)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	group := groupPlaylists(rows)[0]
	return &group, nil
}

func (r *playlistRepository) DeleteGroup(ctx context.Context, userID uint, slug string) error {
	var videoSlugs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := tx.Model(&models.Playlist{}).Select("video_id").Where("user_id = ? AND slug = ?", userID, slug)
		if err := tx.Model(&models.Video{}).Where("id IN (?)", members).Pluck("slug", &videoSlugs).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND slug = ?", userID, slug).Delete(&models.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateVideo(ctx, videoSlugs...)
	return nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, userID uint, slug string, video *models.Video) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND slug = ? AND video_id = ?", userID, slug, video.ID).
		Delete(&models.Playlist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cache.InvalidateVideo(ctx, video.Slug)
	return nil
}
