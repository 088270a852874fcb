package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caloriesapp/backend/internal/models"
)

type BadgeRepository struct {
	database *gorm.DB
}

func NewBadgeRepository(database *gorm.DB) *BadgeRepository {
	return &BadgeRepository{database: database}
}

func (repo *BadgeRepository) ListByUser(userID uint) ([]models.UserBadge, error) {
	badges := make([]models.UserBadge, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("earned_at ASC, id ASC").
		Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

// Grant inserts a badge once; re-granting an already earned badge is a
// no-op thanks to the (user_id, badge_id) unique index.
func (repo *BadgeRepository) Grant(badge *models.UserBadge) error {
	return repo.database.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(badge).Error
}

func (repo *BadgeRepository) Count(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *BadgeRepository) MarkAllSeen(userID uint) error {
	return repo.database.Model(&models.UserBadge{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true).Error
}
