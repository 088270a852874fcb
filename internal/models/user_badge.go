package models

import "time"

const (
	BadgeCategoryStreak    = "streak"
	BadgeCategoryNutrition = "nutrition"
	BadgeCategoryActivity  = "activity"
	BadgeCategorySpecial   = "special"
)

type UserBadge struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;index;uniqueIndex:uidx_user_badge"`
	BadgeID  string `gorm:"not null;index;uniqueIndex:uidx_user_badge"`
	Category string `gorm:"not null"`
	EarnedAt time.Time
	Seen     bool `gorm:"not null;default:false"`
}
