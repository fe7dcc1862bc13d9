package handlers

import (
	"errors"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CommentHandler handles comment routes nested under an article
type CommentHandler struct {
	DB *gorm.DB
}

type commentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

type commentResponse struct {
	Comment services.CommentJSON `json:"comment"`
}

type commentListResponse struct {
	Comments []services.CommentJSON `json:"comments"`
}

// Create handles POST /api/articles/:slug/comments
// @Summary Comment on an article
// @Tags Comments
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Param comment body commentRequest true "Comment body"
// @Success 200 {object} commentResponse
// @Failure 401 {string} string
// @Failure 404 {string} string
// @Failure 422 {object} utils.ErrorsResponseStruct
// @Security TokenAuth
// @Router /articles/{slug}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	author, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	comment, err := services.AddComment(h.DB, article, author, req.Comment.Body)
	if err != nil {
		return err
	}

	projected, err := services.ProjectComment(h.DB, comment, author)
	if err != nil {
		return err
	}
	return c.JSON(commentResponse{Comment: projected})
}

// List handles GET /api/articles/:slug/comments
// @Summary List an article's comments
// @Tags Comments
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} commentListResponse
// @Failure 404 {string} string
// @Router /articles/{slug}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	viewer, err := optionalViewer(h.DB, c)
	if err != nil {
		return err
	}

	comments, err := services.ListComments(h.DB, article)
	if err != nil {
		return err
	}

	projected := make([]services.CommentJSON, 0, len(comments))
	for i := range comments {
		item, err := services.ProjectComment(h.DB, &comments[i], viewer)
		if err != nil {
			return err
		}
		projected = append(projected, item)
	}
	return c.JSON(commentListResponse{Comments: projected})
}

// Delete handles DELETE /api/articles/:slug/comments/:id
// @Summary Delete a comment
// @Description Only the comment's author may delete it
// @Tags Comments
// @Param slug path string true "Article slug"
// @Param id path int true "Comment id"
// @Success 204 {string} string
// @Failure 401 {string} string
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Security TokenAuth
// @Router /articles/{slug}/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	article, err := h.lookupArticle(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}

	comment, err := services.GetComment(h.DB, article, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	if !services.CanDeleteComment(viewer.ID, comment) {
		return fiber.ErrForbidden
	}

	if err := services.DeleteComment(h.DB, comment); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CommentHandler) lookupArticle(c *fiber.Ctx) (*models.Article, error) {
	article, err := services.GetArticleBySlug(h.DB, c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}
	return article, nil
}
