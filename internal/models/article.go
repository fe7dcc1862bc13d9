package models

import (
	"time"
)

// Article represents a published post. The slug is derived once from the title
// plus a random suffix and never changes afterwards. FavoritesCount is
// denormalized; the user_favorites join table is the source of truth and the
// counter is recomputed from it after every favorite/unfavorite.
type Article struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Slug           string `gorm:"size:255;not null;uniqueIndex"`
	Title          string `gorm:"size:255;not null"`
	Description    string `gorm:"size:1024"`
	Body           string `gorm:"type:text"`
	TagList        JSON
	FavoritesCount int64  `gorm:"not null;default:0"`
	AuthorID       uint   `gorm:"not null;index"`
	Author         User
	Comments       []Comment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name for Article
func (Article) TableName() string {
	return "articles"
}
