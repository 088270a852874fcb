package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/models"
)

const contextUserKey = "current_user"

// AuthRequired accepts a Bearer access token and loads the account it
// names.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "missing access token")
	}

	claims, err := handler.parseToken(raw, audienceUser)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid access token")
	}

	user, err := handler.repos.Users.FindByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unknown account")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// AdminRequired accepts only tokens minted by the admin login endpoint.
func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return apiError(c, fiber.StatusUnauthorized, "missing access token")
	}
	if _, err := handler.parseToken(raw, audienceAdmin); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid access token")
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals(contextUserKey).(models.User)
	return user
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
