package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/security"
)

type adminLoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin exchanges the operator credential for a short-lived admin
// token. Failures are throttled per client IP.
func (handler *Handler) AdminLogin(c *fiber.Ctx) error {
	if handler.cfg.AdminPasswordHash == "" {
		return apiError(c, fiber.StatusNotFound, "admin access is not configured")
	}

	key := limiterKey(c)
	now := time.Now()
	if handler.adminLimiter.blocked(key, now, adminAttemptLimit, adminAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	var payload adminLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if payload.Username != handler.cfg.AdminUsername ||
		!security.VerifyPassword(handler.cfg.AdminPasswordHash, payload.Password) {
		handler.adminLimiter.recordFailure(key, now, adminAttemptWindow)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	handler.adminLimiter.reset(key)

	token, err := handler.issueAdminToken()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(fiber.Map{"access_token": token})
}

func (handler *Handler) AdminListUsers(c *fiber.Ctx) error {
	users, err := handler.repos.Users.ListAll()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load users")
	}

	response := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		entry := fiber.Map{
			"id":           user.ID,
			"email":        user.Email,
			"name":         user.Name,
			"streak_count": user.StreakCount,
			"created_at":   user.CreatedAt.UTC().Format(time.RFC3339),
		}
		if user.LastStreakDate != nil {
			entry["last_streak_date"] = user.LastStreakDate.UTC().Format("2006-01-02")
		}
		response = append(response, entry)
	}
	return c.JSON(response)
}

func (handler *Handler) AdminUserEntries(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	entries, err := handler.entries.RecentMeals(uint(userID), limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	response := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toEntryResponse(entry, ""))
	}
	return c.JSON(response)
}
