package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/services"
)

type dailyQuery struct {
	Date            string `query:"date"`
	TzOffsetMinutes int    `query:"tz_offset_minutes"`
}

type batchPayload struct {
	Dates           []string `json:"dates"`
	TzOffsetMinutes int      `json:"tz_offset_minutes"`
}

type mealResponse struct {
	ID          uint     `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Time        string   `json:"time"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fats        float64  `json:"fats"`
	Fiber       float64  `json:"fiber"`
	Sugar       float64  `json:"sugar"`
	Sodium      float64  `json:"sodium"`
	HealthScore *float64 `json:"health_score"`
	AmountML    *int     `json:"amount_ml,omitempty"`
}

type dailyResponse struct {
	Date          string         `json:"date"`
	TotalCalories float64        `json:"total_calories"`
	TotalProtein  float64        `json:"total_protein"`
	TotalFat      float64        `json:"total_fat"`
	TotalCarbs    float64        `json:"total_carbs"`
	TotalFiber    float64        `json:"total_fiber"`
	TotalSugar    float64        `json:"total_sugar"`
	TotalSodium   float64        `json:"total_sodium"`
	HealthScore   *float64       `json:"health_score"`
	StreakCount   int            `json:"streak_count"`
	Meals         []mealResponse `json:"meals"`
}

// GetDay returns one local day's ledger and runs the streak evaluation
// for that day.
func (handler *Handler) GetDay(c *fiber.Ctx) error {
	var query dailyQuery
	if err := c.QueryParser(&query); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid query")
	}

	summary, err := handler.daily.Day(currentUser(c).ID, query.Date, query.TzOffsetMinutes)
	if errors.Is(err, services.ErrInvalidDate) {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load day")
	}
	return c.JSON(toDailyResponse(summary))
}

// GetDaysBatch answers up to a month of days in one request. Unparsable
// dates are omitted from the response rather than failing it.
func (handler *Handler) GetDaysBatch(c *fiber.Ctx) error {
	var payload batchPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	summaries, err := handler.daily.Batch(currentUser(c).ID, payload.Dates, payload.TzOffsetMinutes)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load days")
	}

	response := make([]dailyResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, toDailyResponse(summary))
	}
	return c.JSON(response)
}

func toDailyResponse(summary services.DailySummary) dailyResponse {
	meals := make([]mealResponse, 0, len(summary.Entries))
	for _, entry := range summary.Entries {
		meals = append(meals, mealResponse{
			ID:          entry.ID,
			Kind:        entry.Kind,
			Name:        entry.Name,
			Time:        entry.TimeLocal,
			Calories:    entry.Calories,
			Protein:     entry.Protein,
			Carbs:       entry.Carbs,
			Fats:        entry.Fats,
			Fiber:       entry.Fiber,
			Sugar:       entry.Sugar,
			Sodium:      entry.Sodium,
			HealthScore: entry.HealthScore,
			AmountML:    entry.AmountML,
		})
	}

	return dailyResponse{
		Date:          summary.Date,
		TotalCalories: summary.Calories,
		TotalProtein:  summary.Protein,
		TotalFat:      summary.Fat,
		TotalCarbs:    summary.Carbs,
		TotalFiber:    summary.Fiber,
		TotalSugar:    summary.Sugar,
		TotalSodium:   summary.Sodium,
		HealthScore:   summary.HealthScore,
		StreakCount:   summary.StreakCount,
		Meals:         meals,
	}
}
