package models

import (
	"time"
)

// PostView 按文章 slug 统计总浏览量
type PostView struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PostView) TableName() string {
	return "post_views"
}

// DailyView 按东八区日期统计全站浏览量，Date 形如 2025-01-31
type DailyView struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Date      string    `gorm:"size:10;not null;uniqueIndex" json:"date"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DailyView) TableName() string {
	return "daily_views"
}
