package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ListBadges evaluates pending grants first so the client always sees a
// current earned set, then returns the full catalogue with status.
func (handler *Handler) ListBadges(c *fiber.Ctx) error {
	userID := currentUser(c).ID

	if _, err := handler.badges.EvaluateAndGrant(userID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to evaluate badges")
	}

	statuses, earnedTotal, unseen, err := handler.badges.Overview(userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load badges")
	}

	badges := make([]fiber.Map, 0, len(statuses))
	for _, status := range statuses {
		entry := fiber.Map{
			"badge_id":    status.ID,
			"emoji":       status.Emoji,
			"title":       status.Title,
			"description": status.Description,
			"requirement": status.Requirement,
			"color":       status.Color,
			"category":    status.Category,
			"is_earned":   status.Earned,
			"seen":        status.Seen,
		}
		if status.EarnedAt != nil {
			entry["earned_at"] = status.EarnedAt.UTC().Format(time.RFC3339)
		}
		badges = append(badges, entry)
	}

	return c.JSON(fiber.Map{
		"badges":        badges,
		"total_earned":  earnedTotal,
		"new_badge_ids": unseen,
	})
}

func (handler *Handler) MarkBadgesSeen(c *fiber.Ctx) error {
	if err := handler.badges.MarkSeen(currentUser(c).ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to mark badges seen")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
