package models

import (
	"time"
)

// User represents a registered account. The password is stored only as a
// (Salt, Hash) pair; the plaintext never touches the database.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"size:255;not null;uniqueIndex"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Bio       string `gorm:"size:1024"`
	Image     string `gorm:"size:1024"`
	Salt      string `gorm:"size:64;not null"`
	Hash      string `gorm:"size:2048;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Articles this user has favorited. Membership is unique, order irrelevant.
	Favorites []Article `gorm:"many2many:user_favorites;"`

	// Users this user follows.
	Following []*User `gorm:"many2many:user_follows;joinForeignKey:follower_id;joinReferences:followee_id"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
