package services

import (
	"errors"
	"strings"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/types"
	"gorm.io/gorm"
)

// AddComment persists a new comment on the article, appending it to the
// article's comment set.
func AddComment(db *gorm.DB, article *models.Article, author *models.User, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, types.NewValidationError("body", "can't be blank")
	}

	comment := &models.Comment{
		Body:      body,
		AuthorID:  author.ID,
		ArticleID: article.ID,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, err
	}

	comment.Author = *author
	return comment, nil
}

// ListComments returns the article's comments newest first with authors
// populated.
func ListComments(db *gorm.DB, article *models.Article) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("Author").
		Where("article_id = ?", article.ID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// GetComment resolves a comment by id, scoped to its parent article.
func GetComment(db *gorm.DB, article *models.Article, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := db.Where("id = ? AND article_id = ?", id, article.ID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the comment from its parent article's comment set.
// Authorization is the caller's responsibility (CanDeleteComment).
func DeleteComment(db *gorm.DB, comment *models.Comment) error {
	return db.Delete(comment).Error
}
