package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/models"
	"github.com/caloriesapp/backend/internal/services"
)

type weightPayload struct {
	WeightKG  float64 `json:"weight_kg"`
	CreatedAt *string `json:"created_at"`
}

type weightLogResponse struct {
	ID        uint    `json:"id"`
	WeightKG  float64 `json:"weight_kg"`
	CreatedAt string  `json:"created_at"`
}

func (handler *Handler) AddWeight(c *fiber.Ctx) error {
	var payload weightPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.WeightKG <= 0 {
		return apiError(c, fiber.StatusBadRequest, "weight_kg must be positive")
	}

	var createdAt *time.Time
	if payload.CreatedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *payload.CreatedAt)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid created_at")
		}
		createdAt = &parsed
	}

	entry, err := handler.weight.AddWeight(currentUser(c).ID, payload.WeightKG, createdAt)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save weight")
	}

	// A first weigh-in may unlock the scale badges.
	_, _ = handler.badges.EvaluateAndGrant(currentUser(c).ID)

	return c.Status(fiber.StatusCreated).JSON(toWeightLogResponse(entry))
}

func (handler *Handler) WeightHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	logs, err := handler.weight.History(currentUser(c).ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load history")
	}

	response := make([]weightLogResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, toWeightLogResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) WeightStats(c *fiber.Ctx) error {
	stats, err := handler.weight.Stats(currentUser(c).ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load stats")
	}
	return c.JSON(toWeightStatsResponse(stats))
}

func (handler *Handler) ProgressData(c *fiber.Ctx) error {
	overview, err := handler.progress.Overview(currentUser(c).ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load progress")
	}

	calorieStats := make([]fiber.Map, 0, len(overview.CalorieStats))
	for _, stats := range overview.CalorieStats {
		calorieStats = append(calorieStats, fiber.Map{
			"period":           stats.Period,
			"average_calories": stats.AverageCalories,
			"status":           stats.Status,
		})
	}

	return c.JSON(fiber.Map{
		"streak_count":  overview.StreakCount,
		"badges_count":  overview.BadgesCount,
		"weight_stats":  toWeightStatsResponse(overview.WeightStats),
		"calorie_stats": calorieStats,
		"bmi":           overview.BMI,
		"bmi_category":  overview.BMICategory,
	})
}

func toWeightLogResponse(entry models.WeightLog) weightLogResponse {
	return weightLogResponse{
		ID:        entry.ID,
		WeightKG:  entry.WeightKG,
		CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toWeightStatsResponse(stats services.WeightStats) fiber.Map {
	changes := make([]fiber.Map, 0, len(stats.Changes))
	for _, change := range stats.Changes {
		changes = append(changes, fiber.Map{
			"period":    change.Period,
			"change_kg": change.ChangeKG,
			"status":    change.Status,
		})
	}

	history := make([]weightLogResponse, 0, len(stats.History))
	for _, entry := range stats.History {
		history = append(history, toWeightLogResponse(entry))
	}

	return fiber.Map{
		"current_weight": stats.CurrentWeightKG,
		"target_weight":  stats.TargetWeightKG,
		"start_weight":   stats.StartWeightKG,
		"total_change":   stats.TotalChangeKG,
		"changes":        changes,
		"history":        history,
	}
}
