package handlers

import (
	"errors"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ArticleHandler handles article CRUD, listing, feed and favoriting routes
type ArticleHandler struct {
	DB *gorm.DB
}

type articleRequest struct {
	Article services.ArticleInput `json:"article"`
}

type articleUpdateRequest struct {
	Article services.ArticleUpdateInput `json:"article"`
}

type articleResponse struct {
	Article services.ArticleJSON `json:"article"`
}

type articleListResponse struct {
	Articles      []services.ArticleJSON `json:"articles"`
	ArticlesCount int64                  `json:"articlesCount"`
}

// List handles GET /api/articles
// @Summary List articles
// @Description List articles filtered conjunctively by tag, author and favoriting user, newest first
// @Tags Articles
// @Produce json
// @Param tag query string false "Exact tag membership"
// @Param author query string false "Author username"
// @Param favorited query string false "Username whose favorites include the article"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} articleListResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	filter := services.ArticleFilter{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Limit:       c.QueryInt("limit"),
		Offset:      c.QueryInt("offset"),
	}

	articles, total, err := services.ListArticles(h.DB, filter)
	if err != nil {
		return err
	}

	viewer, err := optionalViewer(h.DB, c)
	if err != nil {
		return err
	}

	return h.renderList(c, articles, total, viewer)
}

// Feed handles GET /api/articles/feed
// @Summary List followed authors' articles
// @Description List articles whose author is in the viewer's following set, newest first
// @Tags Articles
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} articleListResponse
// @Failure 401 {string} string
// @Security TokenAuth
// @Router /articles/feed [get]
func (h *ArticleHandler) Feed(c *fiber.Ctx) error {
	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	articles, total, err := services.FeedArticles(h.DB, viewer, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	return h.renderList(c, articles, total, viewer)
}

// Create handles POST /api/articles
// @Summary Create an article
// @Tags Articles
// @Accept json
// @Produce json
// @Param article body articleRequest true "Article fields"
// @Success 200 {object} articleResponse
// @Failure 401 {string} string
// @Failure 422 {object} utils.ErrorsResponseStruct
// @Security TokenAuth
// @Router /articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	author, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	article, err := services.CreateArticle(h.DB, author, req.Article)
	if err != nil {
		return err
	}

	return h.renderArticle(c, article, author)
}

// Get handles GET /api/articles/:slug
// @Summary Get an article
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} articleResponse
// @Failure 404 {string} string
// @Router /articles/{slug} [get]
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	viewer, err := optionalViewer(h.DB, c)
	if err != nil {
		return err
	}

	return h.renderArticle(c, article, viewer)
}

// Update handles PUT /api/articles/:slug
// @Summary Update an article
// @Description Apply only the fields present in the request body; owner only
// @Tags Articles
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Param article body articleUpdateRequest true "Fields to update"
// @Success 200 {object} articleResponse
// @Failure 401 {string} string
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Failure 422 {object} utils.ErrorsResponseStruct
// @Security TokenAuth
// @Router /articles/{slug} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	// No field may be applied when the ownership predicate fails.
	if !services.CanMutateArticle(viewer.ID, article) {
		return fiber.ErrForbidden
	}

	var req articleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	if err := services.UpdateArticle(h.DB, article, req.Article); err != nil {
		return err
	}

	return h.renderArticle(c, article, viewer)
}

// Delete handles DELETE /api/articles/:slug
// @Summary Delete an article
// @Tags Articles
// @Param slug path string true "Article slug"
// @Success 204 {string} string
// @Failure 401 {string} string
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Security TokenAuth
// @Router /articles/{slug} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	if !services.CanMutateArticle(viewer.ID, article) {
		return fiber.ErrForbidden
	}

	if err := services.DeleteArticle(h.DB, article); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Favorite handles POST /api/articles/:slug/favorite
// @Summary Favorite an article
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} articleResponse
// @Failure 401 {string} string
// @Failure 404 {string} string
// @Security TokenAuth
// @Router /articles/{slug}/favorite [post]
func (h *ArticleHandler) Favorite(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	if err := services.FavoriteArticle(h.DB, viewer, article); err != nil {
		return err
	}

	return h.renderArticle(c, article, viewer)
}

// Unfavorite handles DELETE /api/articles/:slug/favorite
// @Summary Unfavorite an article
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} articleResponse
// @Failure 401 {string} string
// @Failure 404 {string} string
// @Security TokenAuth
// @Router /articles/{slug}/favorite [delete]
func (h *ArticleHandler) Unfavorite(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	if err := services.UnfavoriteArticle(h.DB, viewer, article); err != nil {
		return err
	}

	return h.renderArticle(c, article, viewer)
}

// lookupArticle resolves the :slug path parameter to a stored article.
func (h *ArticleHandler) lookupArticle(c *fiber.Ctx) (*models.Article, error) {
	article, err := services.GetArticleBySlug(h.DB, c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}
	return article, nil
}

func (h *ArticleHandler) renderArticle(c *fiber.Ctx, article *models.Article, viewer *models.User) error {
	projected, err := services.ProjectArticle(h.DB, article, viewer)
	if err != nil {
		return err
	}
	return c.JSON(articleResponse{Article: projected})
}

func (h *ArticleHandler) renderList(c *fiber.Ctx, articles []models.Article, total int64, viewer *models.User) error {
	projected := make([]services.ArticleJSON, 0, len(articles))
	for i := range articles {
		item, err := services.ProjectArticle(h.DB, &articles[i], viewer)
		if err != nil {
			return err
		}
		projected = append(projected, item)
	}
	return c.JSON(articleListResponse{Articles: projected, ArticlesCount: total})
}
