package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	WorkoutFrequencyLow    = "0-2"
	WorkoutFrequencyMedium = "3-5"
	WorkoutFrequencyHigh   = "6+"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

const (
	DietClassic     = "classic"
	DietPescatarian = "pescatarian"
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"
)

// OnboardingProfile holds the answers collected during onboarding plus
// the energy targets derived from them. TargetCalories doubles as the
// daily calorie target the streak engine evaluates against.
type OnboardingProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex"`

	Gender           *string
	WorkoutFrequency *string
	HeightCM         *float64
	WeightKG         *float64
	BirthDate        *time.Time `gorm:"type:date"`
	Goal             *string
	DietType         *string

	BMR            *float64
	TDEE           *float64
	TargetCalories *float64

	ProteinGrams *float64
	CarbsGrams   *float64
	FatsGrams    *float64

	TargetWeightKG *float64
	WaterGoalML    *int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}
