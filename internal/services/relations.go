package services

import (
	"github.com/conduitapp/conduit/internal/models"
	"gorm.io/gorm"
)

// FavoriteArticle idempotently adds the article to the user's favorites set,
// then recomputes the article's denormalized favorites counter from the join
// table. The counter is recounted by a full scan rather than incremented in
// place: the relation is the source of truth, so a crash between the two
// writes self-heals on the next recompute.
func FavoriteArticle(db *gorm.DB, user *models.User, article *models.Article) error {
	if err := db.Model(user).Association("Favorites").Append(&models.Article{ID: article.ID}); err != nil {
		return err
	}
	return recountFavorites(db, article)
}

// UnfavoriteArticle removes the article from the user's favorites set and
// recomputes the counter. Removing an absent entry is a no-op.
func UnfavoriteArticle(db *gorm.DB, user *models.User, article *models.Article) error {
	if err := db.Model(user).Association("Favorites").Delete(&models.Article{ID: article.ID}); err != nil {
		return err
	}
	return recountFavorites(db, article)
}

// IsFavorited reports whether the user's favorites set contains the article.
func IsFavorited(db *gorm.DB, userID, articleID uint) (bool, error) {
	var count int64
	err := db.Table("user_favorites").
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// FollowUser idempotently adds the target to the user's following set.
func FollowUser(db *gorm.DB, user *models.User, target *models.User) error {
	return db.Model(user).Association("Following").Append(&models.User{ID: target.ID})
}

// UnfollowUser removes the target from the user's following set.
func UnfollowUser(db *gorm.DB, user *models.User, target *models.User) error {
	return db.Model(user).Association("Following").Delete(&models.User{ID: target.ID})
}

// IsFollowing reports whether the user's following set contains the target.
func IsFollowing(db *gorm.DB, userID, targetID uint) (bool, error) {
	var count int64
	err := db.Table("user_follows").
		Where("follower_id = ? AND followee_id = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}

// recountFavorites sets the article counter to the number of users whose
// favorites set currently contains the article.
func recountFavorites(db *gorm.DB, article *models.Article) error {
	var count int64
	if err := db.Table("user_favorites").
		Where("article_id = ?", article.ID).
		Count(&count).Error; err != nil {
		return err
	}

	if err := db.Model(&models.Article{}).
		Where("id = ?", article.ID).
		Update("favorites_count", count).Error; err != nil {
		return err
	}

	article.FavoritesCount = count
	return nil
}
