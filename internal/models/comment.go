package models

import (
	"time"
)

// Comment belongs to exactly one article and one authoring user; both
// references are immutable after creation.
type Comment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Body      string `gorm:"type:text;not null"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    User
	ArticleID uint `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName overrides the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
