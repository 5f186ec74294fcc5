package models

import (
	"time"
)

// PromotionKind distinguishes ads from stories in shared promotion code.
type PromotionKind string

const (
	PromotionAds   PromotionKind = "ads"
	PromotionStory PromotionKind = "stories"
)

// AdsPlan is a priced, duration-bound configuration for ads.
type AdsPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Duration  int       `gorm:"not null" json:"duration"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoryPlan is a priced, duration-bound configuration for stories.
type StoryPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Duration  int       `gorm:"not null" json:"duration"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ads is a paid banner promotion.
type Ads struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Link      string    `gorm:"size:2048" json:"link"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PlanID    uint      `gorm:"not null;index" json:"planId"`
	Plan      *AdsPlan  `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null;index" json:"endDate"`
	Active    bool      `gorm:"not null;index" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Story is a paid short-lived promotion.
type Story struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Slug      string     `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	Link      string     `gorm:"size:2048" json:"link"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PlanID    uint       `gorm:"not null;index" json:"planId"`
	Plan      *StoryPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   time.Time  `gorm:"not null;index" json:"endDate"`
	Active    bool       `gorm:"not null;index" json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName keeps the plural form consistent with the other promotion tables.
func (Ads) TableName() string { return "ads" }

// PromotionWindow returns the active window for a plan of duration days
// starting at start.
func PromotionWindow(start time.Time, durationDays int) (time.Time, time.Time) {
	return start, start.AddDate(0, 0, durationDays)
}
