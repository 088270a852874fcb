package services

import (
	"errors"
	"math"
	"time"

	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/models"
)

var ErrInvalidProfile = errors.New("invalid onboarding profile")

// activityMultipliers maps workout frequency buckets to TDEE multipliers.
var activityMultipliers = map[string]float64{
	models.WorkoutFrequencyLow:    1.2,
	models.WorkoutFrequencyMedium: 1.55,
	models.WorkoutFrequencyHigh:   1.725,
}

// ProfileInput carries the onboarding answers; nil fields were skipped.
type ProfileInput struct {
	Gender           *string
	WorkoutFrequency *string
	HeightCM         *float64
	WeightKG         *float64
	BirthDate        *time.Time
	Goal             *string
	DietType         *string
	TargetWeightKG   *float64
	WaterGoalML      *int
}

type OnboardingService struct {
	profiles *db.OnboardingRepository
	now      func() time.Time
}

func NewOnboardingService(profiles *db.OnboardingRepository) *OnboardingService {
	return &OnboardingService{profiles: profiles, now: time.Now}
}

// SaveProfile merges new answers into the stored profile and recomputes
// the derived energy targets whenever enough fields are present.
func (service *OnboardingService) SaveProfile(userID uint, input ProfileInput) (models.OnboardingProfile, error) {
	if err := validateProfileInput(input); err != nil {
		return models.OnboardingProfile{}, err
	}

	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return models.OnboardingProfile{}, err
	}
	if !found {
		profile = models.OnboardingProfile{UserID: userID}
	}

	applyProfileInput(&profile, input)

	if bmr, ok := ComputeBMR(profile, service.now()); ok {
		tdee, target := deriveEnergyTargets(profile, bmr)
		protein, carbs, fats := MacroSplit(target)
		profile.BMR = &bmr
		profile.TDEE = &tdee
		profile.TargetCalories = &target
		profile.ProteinGrams = &protein
		profile.CarbsGrams = &carbs
		profile.FatsGrams = &fats
	}

	if found {
		err = service.profiles.Save(&profile)
	} else {
		err = service.profiles.Create(&profile)
	}
	if err != nil {
		return models.OnboardingProfile{}, err
	}
	return profile, nil
}

func (service *OnboardingService) Profile(userID uint) (models.OnboardingProfile, bool, error) {
	return service.profiles.FindByUser(userID)
}

func applyProfileInput(profile *models.OnboardingProfile, input ProfileInput) {
	if input.Gender != nil {
		profile.Gender = input.Gender
	}
	if input.WorkoutFrequency != nil {
		profile.WorkoutFrequency = input.WorkoutFrequency
	}
	if input.HeightCM != nil {
		profile.HeightCM = input.HeightCM
	}
	if input.WeightKG != nil {
		profile.WeightKG = input.WeightKG
	}
	if input.BirthDate != nil {
		profile.BirthDate = input.BirthDate
	}
	if input.Goal != nil {
		profile.Goal = input.Goal
	}
	if input.DietType != nil {
		profile.DietType = input.DietType
	}
	if input.TargetWeightKG != nil {
		profile.TargetWeightKG = input.TargetWeightKG
	}
	if input.WaterGoalML != nil {
		profile.WaterGoalML = input.WaterGoalML
	}
}

// validateProfileInput rejects out-of-range numbers and unknown enum
// values before anything touches the stored profile.
func validateProfileInput(input ProfileInput) error {
	if input.Gender != nil && *input.Gender != models.GenderMale && *input.Gender != models.GenderFemale {
		return ErrInvalidProfile
	}
	if input.WorkoutFrequency != nil {
		if _, ok := activityMultipliers[*input.WorkoutFrequency]; !ok {
			return ErrInvalidProfile
		}
	}
	if input.Goal != nil {
		switch *input.Goal {
		case models.GoalLose, models.GoalMaintain, models.GoalGain:
		default:
			return ErrInvalidProfile
		}
	}
	if input.DietType != nil {
		switch *input.DietType {
		case models.DietClassic, models.DietPescatarian, models.DietVegetarian, models.DietVegan:
		default:
			return ErrInvalidProfile
		}
	}
	if input.HeightCM != nil && (*input.HeightCM <= 0 || *input.HeightCM > 300) {
		return ErrInvalidProfile
	}
	if input.WeightKG != nil && (*input.WeightKG <= 0 || *input.WeightKG > 500) {
		return ErrInvalidProfile
	}
	if input.TargetWeightKG != nil && (*input.TargetWeightKG <= 0 || *input.TargetWeightKG > 500) {
		return ErrInvalidProfile
	}
	if input.WaterGoalML != nil && *input.WaterGoalML <= 0 {
		return ErrInvalidProfile
	}
	return nil
}

// ComputeBMR applies Mifflin-St Jeor. False when gender, height, weight
// or birth date is missing, or the derived age is implausible.
func ComputeBMR(profile models.OnboardingProfile, now time.Time) (float64, bool) {
	if profile.Gender == nil || profile.HeightCM == nil || profile.WeightKG == nil || profile.BirthDate == nil {
		return 0, false
	}

	age := now.Year() - profile.BirthDate.Year()
	if now.Before(profile.BirthDate.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, false
	}

	bmr := 10**profile.WeightKG + 6.25**profile.HeightCM - 5*float64(age)
	if *profile.Gender == models.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Round(bmr), true
}

// deriveEnergyTargets turns BMR into TDEE and a goal-adjusted calorie
// target. Weight loss runs a 500 kcal deficit floored at 1200; gain a
// 400 kcal surplus.
func deriveEnergyTargets(profile models.OnboardingProfile, bmr float64) (tdee float64, target float64) {
	multiplier := activityMultipliers[models.WorkoutFrequencyLow]
	if profile.WorkoutFrequency != nil {
		if value, ok := activityMultipliers[*profile.WorkoutFrequency]; ok {
			multiplier = value
		}
	}
	tdee = math.Round(bmr * multiplier)

	target = tdee
	if profile.Goal != nil {
		switch *profile.Goal {
		case models.GoalLose:
			target = tdee - 500
			if target < 1200 {
				target = 1200
			}
		case models.GoalGain:
			target = tdee + 400
		}
	}
	return tdee, math.Round(target)
}

// MacroSplit divides a calorie target 30/40/30 across protein, carbs
// and fat, in grams.
func MacroSplit(targetCalories float64) (proteinGrams float64, carbsGrams float64, fatsGrams float64) {
	proteinGrams = math.Round(targetCalories * 0.30 / 4)
	carbsGrams = math.Round(targetCalories * 0.40 / 4)
	fatsGrams = math.Round(targetCalories * 0.30 / 9)
	return proteinGrams, carbsGrams, fatsGrams
}
