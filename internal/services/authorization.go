package services

import (
	"github.com/conduitapp/conduit/internal/models"
)

// CanMutateArticle reports whether the identity may edit or delete the
// article. Only the owning author may.
func CanMutateArticle(userID uint, article *models.Article) bool {
	return userID != 0 && userID == article.AuthorID
}

// CanDeleteComment reports whether the identity may delete the comment. Only
// the comment's author may.
func CanDeleteComment(userID uint, comment *models.Comment) bool {
	return userID != 0 && userID == comment.AuthorID
}
