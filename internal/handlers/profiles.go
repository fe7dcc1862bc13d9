package handlers

import (
	"errors"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProfileHandler handles public profile and follow/unfollow routes
type ProfileHandler struct {
	DB *gorm.DB
}

type profileResponse struct {
	Profile services.ProfileJSON `json:"profile"`
}

// Get handles GET /api/profiles/:username
// @Summary Get a profile
// @Description Return a user's public profile; following is viewer-relative and false for anonymous viewers
// @Tags Profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} profileResponse
// @Failure 404 {string} string
// @Router /profiles/{username} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	target, err := h.lookupProfile(c)
	if err != nil {
		return err
	}

	viewer, err := optionalViewer(h.DB, c)
	if err != nil {
		return err
	}

	profile, err := services.ProjectProfile(h.DB, target, viewer)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse{Profile: profile})
}

// Follow handles POST /api/profiles/:username/follow
// @Summary Follow a user
// @Tags Profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string
// @Failure 404 {string} string
// @Security TokenAuth
// @Router /profiles/{username}/follow [post]
func (h *ProfileHandler) Follow(c *fiber.Ctx) error {
	target, err := h.lookupProfile(c)
	if err != nil {
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	if err := services.FollowUser(h.DB, viewer, target); err != nil {
		return err
	}

	profile, err := services.ProjectProfile(h.DB, target, viewer)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse{Profile: profile})
}

// Unfollow handles DELETE /api/profiles/:username/follow
// @Summary Unfollow a user
// @Tags Profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string
// @Failure 404 {string} string
// @Security TokenAuth
// @Router /profiles/{username}/follow [delete]
func (h *ProfileHandler) Unfollow(c *fiber.Ctx) error {
	target, err := h.lookupProfile(c)
	if err != nil {
		return err
	}

	viewer, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	if err := services.UnfollowUser(h.DB, viewer, target); err != nil {
		return err
	}

	profile, err := services.ProjectProfile(h.DB, target, viewer)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse{Profile: profile})
}

// lookupProfile resolves the :username path parameter to a stored user.
func (h *ProfileHandler) lookupProfile(c *fiber.Ctx) (*models.User, error) {
	target, err := services.GetUserByUsername(h.DB, c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}
	return target, nil
}
