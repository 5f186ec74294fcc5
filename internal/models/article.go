package models

import (
	"time"
)

// Article is a long-form written post.
type Article struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Slug     string   `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Summary  string   `gorm:"type:text;not null" json:"summary"`
	Body     string   `gorm:"type:text;not null" json:"body"`
	Tags     []string `gorm:"serializer:json;type:text" json:"tags"`
	Reads    int      `gorm:"not null" json:"reads"`
	Active   bool     `gorm:"not null;index" json:"active"`
	Featured bool     `gorm:"not null;index" json:"featured"`
	UserID   uint     `gorm:"not null;index" json:"userId"`
	User     *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	// Counts are not persisted; computed at query time.
	LikesCount     int       `gorm:"->;-:migration" json:"likesCount"`
	CommentsCount  int       `gorm:"->;-:migration" json:"commentsCount"`
	BookmarksCount int       `gorm:"->;-:migration" json:"bookmarksCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Comment is a reader comment on an article.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ArticleID uint      `gorm:"not null;index" json:"articleId"`
	Article   *Article  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Like records that a user liked an article.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_article" json:"userId"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_likes_user_article;index" json:"articleId"`
	Article   *Article  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bookmark records that a user saved an article for later.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmarks_user_article" json:"userId"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_bookmarks_user_article;index" json:"articleId"`
	Article   *Article  `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
