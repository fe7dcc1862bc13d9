package handlers

import (
	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TagHandler handles the derived tag index route
type TagHandler struct {
	DB *gorm.DB
}

type tagListResponse struct {
	Tags []string `json:"tags"`
}

// List handles GET /api/tags
// @Summary List tags
// @Description Return the distinct union of all articles' tag lists
// @Tags Tags
// @Produce json
// @Success 200 {object} tagListResponse
// @Router /tags [get]
func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := services.ListTags(h.DB)
	if err != nil {
		return err
	}
	return c.JSON(tagListResponse{Tags: tags})
}
