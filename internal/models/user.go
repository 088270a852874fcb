package models

import "time"

type User struct {
	ID       uint    `gorm:"primaryKey"`
	Email    *string `gorm:"uniqueIndex"`
	GoogleID *string `gorm:"uniqueIndex"`
	AppleID  *string `gorm:"uniqueIndex"`
	Name     string

	// Consecutive days the calorie target was met. LastStreakDate is the
	// local calendar day of the most recent streak evaluation, stored at
	// midnight UTC.
	StreakCount    int `gorm:"not null;default:0"`
	LastStreakDate *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}
