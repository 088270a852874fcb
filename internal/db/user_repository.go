package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/caloriesapp/backend/internal/models"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByGoogleID(googleID string) (models.User, bool, error) {
	return repo.findBy("google_id = ?", googleID)
}

func (repo *UserRepository) FindByAppleID(appleID string) (models.User, bool, error) {
	return repo.findBy("apple_id = ?", appleID)
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, bool, error) {
	return repo.findBy("lower(trim(email)) = ?", email)
}

func (repo *UserRepository) findBy(condition string, value string) (models.User, bool, error) {
	var user models.User
	result := repo.database.Where(condition, value).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateStreak(userID uint, streakCount int, lastStreakDate *time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"streak_count":     streakCount,
		"last_streak_date": lastStreakDate,
	}).Error
}

func (repo *UserRepository) ListAll() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.LoggedEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WeightLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.OnboardingProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserBadge{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
