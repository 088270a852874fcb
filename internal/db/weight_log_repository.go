package db

import (
	"gorm.io/gorm"

	"github.com/caloriesapp/backend/internal/models"
)

type WeightLogRepository struct {
	database *gorm.DB
}

func NewWeightLogRepository(database *gorm.DB) *WeightLogRepository {
	return &WeightLogRepository{database: database}
}

func (repo *WeightLogRepository) Create(entry *models.WeightLog) error {
	return repo.database.Create(entry).Error
}

func (repo *WeightLogRepository) ListByUserAsc(userID uint) ([]models.WeightLog, error) {
	logs := make([]models.WeightLog, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightLogRepository) ListRecent(userID uint, limit int) ([]models.WeightLog, error) {
	if limit <= 0 {
		limit = 100
	}
	logs := make([]models.WeightLog, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *WeightLogRepository) Count(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.WeightLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
