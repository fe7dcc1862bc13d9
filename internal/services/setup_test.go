package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/conduitapp/conduit/internal/models"
)

// newTestDB opens an in-memory SQLite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// One connection only; each in-memory SQLite connection is its own database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Article{}, &models.Comment{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	return db
}

// seedUser inserts a user directly, skipping the key derivation that tests of
// unrelated behavior do not need.
func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

// seedArticle inserts an article authored by author.
func seedArticle(t *testing.T, db *gorm.DB, author *models.User, title string, tags ...string) *models.Article {
	t.Helper()
	article, err := CreateArticle(db, author, ArticleInput{
		Title:       title,
		Description: "about " + title,
		Body:        "body of " + title,
		TagList:     tags,
	})
	if err != nil {
		t.Fatalf("Failed to seed article %q: %v", title, err)
	}
	return article
}
