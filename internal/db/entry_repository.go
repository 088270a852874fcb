package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/caloriesapp/backend/internal/models"
)

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

// ListByUserWindow returns every entry with startUTC <= occurred_at < endUTC.
// The half-open window is what keeps adjacent days from double counting.
func (repo *EntryRepository) ListByUserWindow(userID uint, startUTC time.Time, endUTC time.Time) ([]models.LoggedEntry, error) {
	entries := make([]models.LoggedEntry, 0)
	if err := repo.database.
		Where("user_id = ? AND occurred_at >= ? AND occurred_at < ?", userID, startUTC, endUTC).
		Order("occurred_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) FindByIDForUser(userID uint, entryID uint) (models.LoggedEntry, bool, error) {
	var entry models.LoggedEntry
	result := repo.database.
		Where("id = ? AND user_id = ?", entryID, userID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.LoggedEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.LoggedEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *EntryRepository) ListRecentMeals(userID uint, limit int) ([]models.LoggedEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries := make([]models.LoggedEntry, 0, limit)
	if err := repo.database.
		Where("user_id = ? AND kind = ?", userID, models.EntryKindMeal).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) Create(entry *models.LoggedEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *EntryRepository) Save(entry *models.LoggedEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *EntryRepository) DeleteByIDForUser(userID uint, entryID uint) error {
	return repo.database.
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.LoggedEntry{}).Error
}

func (repo *EntryRepository) CountMeals(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.LoggedEntry{}).
		Where("user_id = ? AND kind = ?", userID, models.EntryKindMeal).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *EntryRepository) CountDistinctMealNames(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.LoggedEntry{}).
		Where("user_id = ? AND kind = ? AND meal_name IS NOT NULL", userID, models.EntryKindMeal).
		Distinct("meal_name").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountHealthyMeals counts meals whose stored raw score is at least the
// given threshold on the canonical 0-10 scale. Scores stored on the
// 0-100 scale satisfy the same cutoff at threshold*10.
func (repo *EntryRepository) CountHealthyMeals(userID uint, threshold float64) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.LoggedEntry{}).
		Where("user_id = ? AND kind = ?", userID, models.EntryKindMeal).
		Where("(raw_health_score >= ? AND raw_health_score <= 10) OR (raw_health_score >= ? AND raw_health_score <= 100)",
			threshold, threshold*10).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *EntryRepository) ListMealsSince(userID uint, sinceUTC time.Time) ([]models.LoggedEntry, error) {
	entries := make([]models.LoggedEntry, 0)
	if err := repo.database.
		Where("user_id = ? AND kind = ? AND occurred_at >= ?", userID, models.EntryKindMeal, sinceUTC).
		Order("occurred_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
