package services

import (
	"math"
	"time"

	"github.com/caloriesapp/backend/internal/db"
)

const (
	BMICategoryUnderweight = "underweight"
	BMICategoryNormal      = "normal"
	BMICategoryOverweight  = "overweight"
	BMICategoryObese       = "obese"
)

const (
	CalorieStatsOK               = "ok"
	CalorieStatsInsufficientData = "insufficient_data"
)

// minMealsForStats is the floor below which a period produces no
// averages; one or two logged meals say nothing about a week.
const minMealsForStats = 3

// CalorieStats is the average daily intake over one week. Averages are
// nil when the week has too few meals.
type CalorieStats struct {
	Period          string
	AverageCalories *float64
	Status          string
}

// ProgressOverview is everything the progress screen renders in one
// response.
type ProgressOverview struct {
	StreakCount  int
	BadgesCount  int64
	WeightStats  WeightStats
	CalorieStats []CalorieStats
	BMI          *float64
	BMICategory  *string
}

var weeklyPeriodNames = []string{"this_week", "last_week", "2_weeks_ago", "3_weeks_ago"}

type ProgressService struct {
	users    *db.UserRepository
	entries  *db.EntryRepository
	badges   *db.BadgeRepository
	profiles *db.OnboardingRepository
	weight   *WeightService
	now      func() time.Time
}

func NewProgressService(repos *db.Repositories, weight *WeightService) *ProgressService {
	return &ProgressService{
		users:    repos.Users,
		entries:  repos.Entries,
		badges:   repos.Badges,
		profiles: repos.Onboarding,
		weight:   weight,
		now:      time.Now,
	}
}

// Overview assembles the progress screen data for a user.
func (service *ProgressService) Overview(userID uint) (ProgressOverview, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return ProgressOverview{}, err
	}

	badgesCount, err := service.badges.Count(userID)
	if err != nil {
		return ProgressOverview{}, err
	}

	weightStats, err := service.weight.Stats(userID)
	if err != nil {
		return ProgressOverview{}, err
	}

	calorieStats, err := service.weeklyCalorieStats(userID)
	if err != nil {
		return ProgressOverview{}, err
	}

	overview := ProgressOverview{
		StreakCount:  user.StreakCount,
		BadgesCount:  badgesCount,
		WeightStats:  weightStats,
		CalorieStats: calorieStats,
	}

	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return ProgressOverview{}, err
	}
	if found && profile.WeightKG != nil && profile.HeightCM != nil && *profile.HeightCM > 0 {
		bmi, category := BodyMassIndex(*profile.WeightKG, *profile.HeightCM)
		overview.BMI = &bmi
		overview.BMICategory = &category
	}
	return overview, nil
}

// weeklyCalorieStats averages daily intake over the last four Monday
// aligned weeks. A week with meals on N distinct days divides its
// calorie sum by N, so sparse logging does not drag the average down.
func (service *ProgressService) weeklyCalorieStats(userID uint) ([]CalorieStats, error) {
	now := service.now().UTC()
	oldestWeekStart := startOfWeek(now).AddDate(0, 0, -7*len(weeklyPeriodNames))

	meals, err := service.entries.ListMealsSince(userID, oldestWeekStart)
	if err != nil {
		return nil, err
	}

	stats := make([]CalorieStats, 0, len(weeklyPeriodNames))
	for offset, periodName := range weeklyPeriodNames {
		weekStart := startOfWeek(now).AddDate(0, 0, -7*offset)
		weekEnd := weekStart.AddDate(0, 0, 7)

		var totalCalories float64
		mealCount := 0
		daysWithMeals := make(map[string]struct{})
		for _, meal := range meals {
			if meal.OccurredAt.Before(weekStart) || !meal.OccurredAt.Before(weekEnd) {
				continue
			}
			mealCount++
			if meal.Calories != nil {
				totalCalories += *meal.Calories
			}
			daysWithMeals[meal.OccurredAt.Format(dateLayout)] = struct{}{}
		}

		if mealCount < minMealsForStats || len(daysWithMeals) == 0 {
			stats = append(stats, CalorieStats{Period: periodName, Status: CalorieStatsInsufficientData})
			continue
		}

		average := math.Round(totalCalories/float64(len(daysWithMeals))*10) / 10
		stats = append(stats, CalorieStats{Period: periodName, AverageCalories: &average, Status: CalorieStatsOK})
	}
	return stats, nil
}

// BodyMassIndex returns the BMI rounded to one decimal and its WHO
// category. Height is in centimeters.
func BodyMassIndex(weightKG float64, heightCM float64) (float64, string) {
	heightM := heightCM / 100
	bmi := math.Round(weightKG/(heightM*heightM)*10) / 10

	category := BMICategoryObese
	switch {
	case bmi < 18.5:
		category = BMICategoryUnderweight
	case bmi < 25:
		category = BMICategoryNormal
	case bmi < 30:
		category = BMICategoryOverweight
	}
	return bmi, category
}

// startOfWeek truncates to the preceding Monday midnight UTC.
func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -daysSinceMonday)
}
