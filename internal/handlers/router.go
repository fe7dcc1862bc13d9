package handlers

import (
	"errors"
	"log"

	"github.com/conduitapp/conduit/internal/middleware"
	"github.com/conduitapp/conduit/internal/types"
	"github.com/conduitapp/conduit/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Register wires every API route onto the given router group.
func Register(api fiber.Router, db *gorm.DB, secret string) {
	userHandler := &UserHandler{DB: db, Secret: secret}
	profileHandler := &ProfileHandler{DB: db}
	articleHandler := &ArticleHandler{DB: db}
	commentHandler := &CommentHandler{DB: db}
	tagHandler := &TagHandler{DB: db}

	required := middleware.AuthRequired(secret)
	optional := middleware.AuthOptional(secret)

	// Registration and login
	api.Post("/users", userHandler.Register)
	api.Post("/users/login", userHandler.Login)

	// Current user
	api.Get("/user", required, userHandler.Current)
	api.Put("/user", required, userHandler.Update)

	// Profiles
	api.Get("/profiles/:username", optional, profileHandler.Get)
	api.Post("/profiles/:username/follow", required, profileHandler.Follow)
	api.Delete("/profiles/:username/follow", required, profileHandler.Unfollow)

	// Articles; the feed route must register before the :slug route
	api.Get("/articles", optional, articleHandler.List)
	api.Get("/articles/feed", required, articleHandler.Feed)
	api.Post("/articles", required, articleHandler.Create)
	api.Get("/articles/:slug", optional, articleHandler.Get)
	api.Put("/articles/:slug", required, articleHandler.Update)
	api.Delete("/articles/:slug", required, articleHandler.Delete)
	api.Post("/articles/:slug/favorite", required, articleHandler.Favorite)
	api.Delete("/articles/:slug/favorite", required, articleHandler.Unfavorite)

	// Comments
	api.Get("/articles/:slug/comments", optional, commentHandler.List)
	api.Post("/articles/:slug/comments", required, commentHandler.Create)
	api.Delete("/articles/:slug/comments/:id", required, commentHandler.Delete)

	// Tags
	api.Get("/tags", tagHandler.List)
}

// ErrorHandler maps each failure kind to its response shape: validation
// failures carry a per-field message map with a 422, everything else is a
// bare status so internals never leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validation *types.ValidationError
	if errors.As(err, &validation) {
		return utils.ValidationErrorResponse(c, validation)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.SendStatus(fiberErr.Code)
	}

	log.Printf("Unhandled error on %s: %v", c.OriginalURL(), err)
	return c.SendStatus(fiber.StatusInternalServerError)
}
