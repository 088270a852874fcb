package db

import (
	"gorm.io/gorm"

	"github.com/caloriesapp/backend/internal/models"
)

type OnboardingRepository struct {
	database *gorm.DB
}

func NewOnboardingRepository(database *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{database: database}
}

func (repo *OnboardingRepository) FindByUser(userID uint) (models.OnboardingProfile, bool, error) {
	var profile models.OnboardingProfile
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.OnboardingProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.OnboardingProfile{}, false, nil
	}
	return profile, true, nil
}

func (repo *OnboardingRepository) Save(profile *models.OnboardingProfile) error {
	return repo.database.Save(profile).Error
}

func (repo *OnboardingRepository) Create(profile *models.OnboardingProfile) error {
	return repo.database.Create(profile).Error
}

// UpdateCurrentWeight keeps the profile's weight in sync when a new
// weight log arrives.
func (repo *OnboardingRepository) UpdateCurrentWeight(userID uint, weightKG float64) error {
	return repo.database.Model(&models.OnboardingProfile{}).
		Where("user_id = ?", userID).
		Update("weight_kg", weightKG).Error
}
