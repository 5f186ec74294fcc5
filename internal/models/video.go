package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// CategoryName is the closed set of video categories.
type CategoryName string

const (
	CategoryEducation     CategoryName = "EDUCATION"
	CategoryEntertainment CategoryName = "ENTERTAINMENT"
	CategoryGaming        CategoryName = "GAMING"
	CategoryMusic         CategoryName = "MUSIC"
	CategoryNews          CategoryName = "NEWS"
	CategorySports        CategoryName = "SPORTS"
	CategoryTechnology    CategoryName = "TECHNOLOGY"
	CategoryOther         CategoryName = "OTHER"
)

// CategoryNames lists every category in display order.
var CategoryNames = []CategoryName{
	CategoryEducation,
	CategoryEntertainment,
	CategoryGaming,
	CategoryMusic,
	CategoryNews,
	CategorySports,
	CategoryTechnology,
	CategoryOther,
}

// Valid reports whether n is a known category.
func (n CategoryName) Valid() bool {
	for _, known := range CategoryNames {
		if n == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects unknown categories at the API boundary.
func (n *CategoryName) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	name := CategoryName(raw)
	if !name.Valid() {
		return fmt.Errorf("unknown category %q", raw)
	}
	*n = name
	return nil
}

// Category groups videos.
type Category struct {
	ID   uint         `gorm:"primaryKey" json:"id"`
	Name CategoryName `gorm:"uniqueIndex;size:32;not null" json:"name"`
}

// Video is a link to hosted video content.
type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Link        string    `gorm:"size:2048;not null" json:"link"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        []string  `gorm:"serializer:json;type:text" json:"tags"`
	AvgRate     float64   `gorm:"not null" json:"avgRate"`
	TotalRaters int       `gorm:"not null" json:"totalRaters"`
	Active      bool      `gorm:"not null;index" json:"active"`
	Shared      bool      `gorm:"not null" json:"shared"`
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	// Counts are not persisted; computed at query time.
	SharesCount    int       `gorm:"->;-:migration" json:"sharesCount"`
	PlaylistsCount int       `gorm:"->;-:migration" json:"playlistsCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Share records that a user shared a video.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	VideoID   uint      `gorm:"not null;index" json:"videoId"`
	Video     *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rate is a 1..5 star rating of a video. Anonymous ratings have no user.
type Rate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"userId,omitempty"`
	VideoID   uint      `gorm:"not null;index" json:"videoId"`
	Video     *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	Count     int       `gorm:"not null" json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Playlist is one (user, title, video) entry. Rows sharing a user and title
// form a single logical playlist.
type Playlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"size:255;not null;index" json:"slug"`
	Title     string    `gorm:"size:255;not null;uniqueIndex:idx_playlists_user_title_video" json:"title"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_playlists_user_title_video" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_playlists_user_title_video" json:"videoId"`
	Video     *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlaylistGroup is a logical playlist assembled from its rows.
type PlaylistGroup struct {
	Slug   string   `json:"slug"`
	Title  string   `json:"title"`
	Videos []*Video `json:"videos"`
}
