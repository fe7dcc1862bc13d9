package handlers

import (
	"errors"

	"github.com/conduitapp/conduit/internal/middleware"
	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentUserID returns the authenticated user id placed in the request
// context by the auth middleware, or false when the viewer is anonymous.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(middleware.LocalsUserID).(uint)
	return id, ok && id != 0
}

// requireUser resolves the authenticated identity to a stored account. A
// verified token whose account no longer exists rejects with 401, matching
// the contract that business logic only ever sees resolved identities.
func requireUser(db *gorm.DB, c *fiber.Ctx) (*models.User, error) {
	id, ok := currentUserID(c)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	user, err := services.GetUserByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, fiber.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// optionalViewer resolves the viewer for optional-auth endpoints. Anonymous
// requests, and tokens whose account has since disappeared, yield a nil
// viewer; projections then default their relational fields to false.
func optionalViewer(db *gorm.DB, c *fiber.Ctx) (*models.User, error) {
	id, ok := currentUserID(c)
	if !ok {
		return nil, nil
	}
	user, err := services.GetUserByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
