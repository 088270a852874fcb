package models

import "time"

const (
	EntryKindMeal  = "meal"
	EntryKindWater = "water"
)

// LoggedEntry is one nutrition-relevant event: a meal photo that went
// through vision analysis, or a water intake. Nutrient fields are nil
// until analysis fills them in; water entries never carry nutrients.
type LoggedEntry struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index:idx_entries_user_occurred"`
	Kind       string    `gorm:"not null;default:meal"`
	OccurredAt time.Time `gorm:"not null;index:idx_entries_user_occurred"`

	// Photo metadata, meal entries only.
	ObjectKey        string
	FileName         string
	FileSize         int64
	MimeType         string
	Barcode          *string `gorm:"index"`
	MealName         *string
	DetectedMealName *string

	// Nutrients estimated by vision analysis, grams except sodium (mg).
	Calories *float64
	Protein  *float64
	Fat      *float64
	Carbs    *float64
	Fiber    *float64
	Sugar    *float64
	Sodium   *float64

	// RawHealthScore is stored exactly as the vision model returned it;
	// the scale is unverified and is normalized on read.
	RawHealthScore *float64

	// Water entries only.
	AmountML *int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// DisplayName picks the best available label for an entry.
func (entry LoggedEntry) DisplayName() string {
	if entry.Kind == EntryKindWater {
		return "Water"
	}
	if entry.MealName != nil && *entry.MealName != "" {
		return *entry.MealName
	}
	if entry.DetectedMealName != nil && *entry.DetectedMealName != "" {
		return *entry.DetectedMealName
	}
	return entry.FileName
}
