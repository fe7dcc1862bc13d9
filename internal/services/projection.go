package services

import (
	"time"

	"github.com/conduitapp/conduit/internal/models"
	"gorm.io/gorm"
)

// placeholderImage is served for profiles that never set an image.
const placeholderImage = "https://static.productionready.io/images/smiley-cyrus.jpg"

// ProfileJSON is the viewer-relative rendering of a user's public profile.
type ProfileJSON struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// AuthUserJSON is the rendering of the requesting user's own account,
// including a bearer token. It is only produced right after registration or
// credential verification, never as a generic read projection.
type AuthUserJSON struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

// ArticleJSON is the viewer-relative rendering of an article.
type ArticleJSON struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favoritesCount"`
	Author         ProfileJSON `json:"author"`
}

// CommentJSON is the viewer-relative rendering of a comment.
type CommentJSON struct {
	ID        uint        `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    ProfileJSON `json:"author"`
}

// ProjectProfile renders a user's public profile for the given viewer. The
// viewer may be nil (anonymous), in which case following is false, never
// omitted. Credentials are never part of any projection.
func ProjectProfile(db *gorm.DB, user *models.User, viewer *models.User) (ProfileJSON, error) {
	profile := ProfileJSON{
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
	}
	if profile.Image == "" {
		profile.Image = placeholderImage
	}

	if viewer != nil {
		following, err := IsFollowing(db, viewer.ID, user.ID)
		if err != nil {
			return ProfileJSON{}, err
		}
		profile.Following = following
	}

	return profile, nil
}

// ProjectArticle renders an article for the given viewer. favorited defaults
// to false for anonymous viewers. article.Author must be populated.
func ProjectArticle(db *gorm.DB, article *models.Article, viewer *models.User) (ArticleJSON, error) {
	author, err := ProjectProfile(db, &article.Author, viewer)
	if err != nil {
		return ArticleJSON{}, err
	}

	projected := ArticleJSON{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        article.TagList.StringList(),
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		FavoritesCount: article.FavoritesCount,
		Author:         author,
	}

	if viewer != nil {
		favorited, err := IsFavorited(db, viewer.ID, article.ID)
		if err != nil {
			return ArticleJSON{}, err
		}
		projected.Favorited = favorited
	}

	return projected, nil
}

// ProjectComment renders a comment for the given viewer. comment.Author must
// be populated.
func ProjectComment(db *gorm.DB, comment *models.Comment, viewer *models.User) (CommentJSON, error) {
	author, err := ProjectProfile(db, &comment.Author, viewer)
	if err != nil {
		return CommentJSON{}, err
	}

	return CommentJSON{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		Author:    author,
	}, nil
}

// ProjectAuthUser renders the account payload with the supplied token.
func ProjectAuthUser(user *models.User, token string) AuthUserJSON {
	return AuthUserJSON{
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Image:    user.Image,
		Token:    token,
	}
}
