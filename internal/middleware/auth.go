package middleware

import (
	"strings"

	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	LocalsUserID   = "userID"
	LocalsUsername = "username"
	LocalsToken    = "token"
)

// AuthRequired validates the bearer token before business logic runs.
// Missing, malformed, expired or badly signed tokens all reject with 401.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := tokenFromHeader(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return authenticate(c, token, secret)
	}
}

// AuthOptional lets requests without a token through as an anonymous viewer.
// A token that is present but malformed or invalid is still rejected: that is
// a protocol error, distinct from "no token".
func AuthOptional(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		token, ok := tokenFromHeader(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return authenticate(c, token, secret)
	}
}

func authenticate(c *fiber.Ctx, token, secret string) error {
	claims, err := services.VerifyToken(token, secret)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	c.Locals(LocalsUserID, claims.ID)
	c.Locals(LocalsUsername, claims.Username)
	c.Locals(LocalsToken, token)
	return c.Next()
}

// tokenFromHeader extracts the token from an "Authorization: Token <jwt>"
// header.
func tokenFromHeader(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
