package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/models"
	"github.com/caloriesapp/backend/internal/services"
)

type onboardingPayload struct {
	Gender           *string  `json:"gender"`
	WorkoutFrequency *string  `json:"workout_frequency"`
	HeightCM         *float64 `json:"height_cm"`
	WeightKG         *float64 `json:"weight_kg"`
	BirthDate        *string  `json:"birth_date"`
	Goal             *string  `json:"goal"`
	DietType         *string  `json:"diet_type"`
	TargetWeightKG   *float64 `json:"target_weight_kg"`
	WaterGoalML      *int     `json:"water_goal_ml"`
}

type onboardingResponse struct {
	Gender           *string  `json:"gender"`
	WorkoutFrequency *string  `json:"workout_frequency"`
	HeightCM         *float64 `json:"height_cm"`
	WeightKG         *float64 `json:"weight_kg"`
	BirthDate        *string  `json:"birth_date"`
	Goal             *string  `json:"goal"`
	DietType         *string  `json:"diet_type"`
	TargetWeightKG   *float64 `json:"target_weight_kg"`
	WaterGoalML      *int     `json:"water_goal_ml"`
	BMR              *float64 `json:"bmr"`
	TDEE             *float64 `json:"tdee"`
	TargetCalories   *float64 `json:"target_calories"`
	ProteinGrams     *float64 `json:"protein_grams"`
	CarbsGrams       *float64 `json:"carbs_grams"`
	FatsGrams        *float64 `json:"fats_grams"`
}

func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	profile, found, err := handler.onboarding.Profile(currentUser(c).ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no profile yet")
	}
	return c.JSON(toOnboardingResponse(profile))
}

// SaveOnboarding upserts answers; derived targets are recomputed by the
// service whenever the inputs allow.
func (handler *Handler) SaveOnboarding(c *fiber.Ctx) error {
	var payload onboardingPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.ProfileInput{
		Gender:           payload.Gender,
		WorkoutFrequency: payload.WorkoutFrequency,
		HeightCM:         payload.HeightCM,
		WeightKG:         payload.WeightKG,
		Goal:             payload.Goal,
		DietType:         payload.DietType,
		TargetWeightKG:   payload.TargetWeightKG,
		WaterGoalML:      payload.WaterGoalML,
	}
	if payload.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *payload.BirthDate)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid birth_date")
		}
		input.BirthDate = &birthDate
	}

	profile, err := handler.onboarding.SaveProfile(currentUser(c).ID, input)
	if errors.Is(err, services.ErrInvalidProfile) {
		return apiError(c, fiber.StatusBadRequest, "invalid profile values")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save profile")
	}
	return c.JSON(toOnboardingResponse(profile))
}

func toOnboardingResponse(profile models.OnboardingProfile) onboardingResponse {
	response := onboardingResponse{
		Gender:           profile.Gender,
		WorkoutFrequency: profile.WorkoutFrequency,
		HeightCM:         profile.HeightCM,
		WeightKG:         profile.WeightKG,
		Goal:             profile.Goal,
		DietType:         profile.DietType,
		TargetWeightKG:   profile.TargetWeightKG,
		WaterGoalML:      profile.WaterGoalML,
		BMR:              profile.BMR,
		TDEE:             profile.TDEE,
		TargetCalories:   profile.TargetCalories,
		ProteinGrams:     profile.ProteinGrams,
		CarbsGrams:       profile.CarbsGrams,
		FatsGrams:        profile.FatsGrams,
	}
	if profile.BirthDate != nil {
		birthDate := profile.BirthDate.Format("2006-01-02")
		response.BirthDate = &birthDate
	}
	return response
}
