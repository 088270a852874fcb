package models

import "time"

type WeightLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	WeightKG  float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
