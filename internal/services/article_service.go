package services

import (
	"errors"
	"strings"
	"unicode"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ArticleInput carries the fields of a new article.
type ArticleInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// ArticleUpdateInput carries a partial article update. Nil fields are left
// untouched. The slug never changes, even when the title does.
type ArticleUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

// ArticleFilter is the conjunction of the optional listing filters.
type ArticleFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	Limit       int
	Offset      int
}

// CreateArticle persists a new article owned by author, deriving a unique
// URL-safe slug from the title plus a random suffix.
func CreateArticle(db *gorm.DB, author *models.User, input ArticleInput) (*models.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, types.NewValidationError("title", "can't be blank")
	}

	article := &models.Article{
		Slug:        slugify(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     models.StringListJSON(input.TagList),
		AuthorID:    author.ID,
	}

	if err := db.Create(article).Error; err != nil {
		return nil, err
	}

	article.Author = *author
	return article, nil
}

// GetArticleBySlug resolves an article by its slug with the author populated.
func GetArticleBySlug(db *gorm.DB, slug string) (*models.Article, error) {
	var article models.Article
	err := db.Preload("Author").Where("slug = ?", slug).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// UpdateArticle applies the non-nil fields of input and persists the article.
// Callers must have already passed the article through CanMutateArticle; no
// field is touched here otherwise.
func UpdateArticle(db *gorm.DB, article *models.Article, input ArticleUpdateInput) error {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return types.NewValidationError("title", "can't be blank")
		}
		article.Title = *input.Title
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	return db.Save(article).Error
}

// DeleteArticle removes the article along with its comments and its rows in
// the favorites relation.
func DeleteArticle(db *gorm.DB, article *models.Article) error {
	if err := db.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM user_favorites WHERE article_id = ?", article.ID).Error; err != nil {
		return err
	}
	return db.Delete(article).Error
}

// ListArticles returns one page of articles matching the filter, newest
// first, plus the total match count. The count and the page are computed as
// two independent queries against the same filter; they are not guaranteed
// snapshot-consistent with each other.
func ListArticles(db *gorm.DB, filter ArticleFilter) ([]models.Article, int64, error) {
	var total int64
	if err := filteredArticles(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)

	var articles []models.Article
	err := filteredArticles(db, filter).
		Clauses(hints.Comment("select", "article-list")).
		Preload("Author").
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// FeedArticles returns one page of articles authored by users in the viewer's
// following set, newest first, plus the total count.
func FeedArticles(db *gorm.DB, viewer *models.User, limit, offset int) ([]models.Article, int64, error) {
	followed := db.Table("user_follows").
		Select("followee_id").
		Where("follower_id = ?", viewer.ID)

	var total int64
	if err := db.Model(&models.Article{}).
		Where("author_id IN (?)", followed).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset = pageBounds(limit, offset)

	var articles []models.Article
	err := db.Model(&models.Article{}).
		Clauses(hints.Comment("select", "article-feed")).
		Where("author_id IN (?)", followed).
		Preload("Author").
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// filteredArticles builds a fresh query applying the conjunctive filters.
func filteredArticles(db *gorm.DB, filter ArticleFilter) *gorm.DB {
	query := db.Model(&models.Article{})

	if filter.Tag != "" {
		// TagList is a JSON array of strings; matching the quoted tag keeps
		// the predicate portable across dialects.
		query = query.Where(`tag_list LIKE ?`, `%"`+filter.Tag+`"%`)
	}
	if filter.Author != "" {
		query = query.
			Joins("JOIN users ON users.id = articles.author_id").
			Where("users.username = ?", strings.ToLower(filter.Author))
	}
	if filter.FavoritedBy != "" {
		favoritedBy := db.Table("user_favorites").
			Select("user_favorites.article_id").
			Joins("JOIN users fav_users ON fav_users.id = user_favorites.user_id").
			Where("fav_users.username = ?", strings.ToLower(filter.FavoritedBy))
		query = query.Where("articles.id IN (?)", favoritedBy)
	}

	return query
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// slugify derives a lowercase URL-safe slug from the title and appends a
// random suffix so that two articles with the same title get distinct slugs.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
