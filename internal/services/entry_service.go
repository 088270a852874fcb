package services

import (
	"errors"
	"time"

	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/models"
)

var ErrEntryNotFound = errors.New("entry not found")

// PhotoMeta describes the stored object backing a meal entry.
type PhotoMeta struct {
	ObjectKey string
	FileName  string
	FileSize  int64
	MimeType  string
}

// NutrientEstimate is what vision analysis produced for one meal. Nil
// fields were not estimated and stay unset on the entry.
type NutrientEstimate struct {
	DetectedName *string
	Calories     *float64
	Protein      *float64
	Fat          *float64
	Carbs        *float64
	Fiber        *float64
	Sugar        *float64
	Sodium       *float64
	HealthScore  *float64
}

// EntryCorrection overwrites user-visible values on an existing entry.
type EntryCorrection struct {
	MealName   *string
	OccurredAt *time.Time
	Calories   *float64
	Protein    *float64
	Fat        *float64
	Carbs      *float64
	Fiber      *float64
	Sugar      *float64
	Sodium     *float64
}

type EntryService struct {
	entries *db.EntryRepository
	now     func() time.Time
}

func NewEntryService(entries *db.EntryRepository) *EntryService {
	return &EntryService{entries: entries, now: time.Now}
}

// LogMeal stores a meal entry for an uploaded photo. Nutrients arrive
// later via ApplyEstimate once analysis finishes.
func (service *EntryService) LogMeal(userID uint, photo PhotoMeta, occurredAt *time.Time, barcode *string, mealName *string) (models.LoggedEntry, error) {
	entry := models.LoggedEntry{
		UserID:     userID,
		Kind:       models.EntryKindMeal,
		OccurredAt: service.occurredOrNow(occurredAt),
		ObjectKey:  photo.ObjectKey,
		FileName:   photo.FileName,
		FileSize:   photo.FileSize,
		MimeType:   photo.MimeType,
		Barcode:    barcode,
		MealName:   mealName,
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.LoggedEntry{}, err
	}
	return entry, nil
}

// LogWater stores a water intake; water entries carry no nutrients and
// never join the health score average.
func (service *EntryService) LogWater(userID uint, amountML int, occurredAt *time.Time) (models.LoggedEntry, error) {
	entry := models.LoggedEntry{
		UserID:     userID,
		Kind:       models.EntryKindWater,
		OccurredAt: service.occurredOrNow(occurredAt),
		AmountML:   &amountML,
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.LoggedEntry{}, err
	}
	return entry, nil
}

// ApplyEstimate writes the analysis result onto an entry. The raw health
// score is stored as returned by the model; normalization happens on
// read.
func (service *EntryService) ApplyEstimate(userID uint, entryID uint, estimate NutrientEstimate) (models.LoggedEntry, error) {
	entry, found, err := service.entries.FindByIDForUser(userID, entryID)
	if err != nil {
		return models.LoggedEntry{}, err
	}
	if !found {
		return models.LoggedEntry{}, ErrEntryNotFound
	}

	entry.DetectedMealName = estimate.DetectedName
	entry.Calories = estimate.Calories
	entry.Protein = estimate.Protein
	entry.Fat = estimate.Fat
	entry.Carbs = estimate.Carbs
	entry.Fiber = estimate.Fiber
	entry.Sugar = estimate.Sugar
	entry.Sodium = estimate.Sodium
	entry.RawHealthScore = estimate.HealthScore

	if err := service.entries.Save(&entry); err != nil {
		return models.LoggedEntry{}, err
	}
	return entry, nil
}

// Correct applies a user's value overwrites to an existing entry.
func (service *EntryService) Correct(userID uint, entryID uint, correction EntryCorrection) (models.LoggedEntry, error) {
	entry, found, err := service.entries.FindByIDForUser(userID, entryID)
	if err != nil {
		return models.LoggedEntry{}, err
	}
	if !found {
		return models.LoggedEntry{}, ErrEntryNotFound
	}

	if correction.MealName != nil {
		entry.MealName = correction.MealName
	}
	if correction.OccurredAt != nil {
		entry.OccurredAt = correction.OccurredAt.UTC()
	}
	if correction.Calories != nil {
		entry.Calories = correction.Calories
	}
	if correction.Protein != nil {
		entry.Protein = correction.Protein
	}
	if correction.Fat != nil {
		entry.Fat = correction.Fat
	}
	if correction.Carbs != nil {
		entry.Carbs = correction.Carbs
	}
	if correction.Fiber != nil {
		entry.Fiber = correction.Fiber
	}
	if correction.Sugar != nil {
		entry.Sugar = correction.Sugar
	}
	if correction.Sodium != nil {
		entry.Sodium = correction.Sodium
	}

	if err := service.entries.Save(&entry); err != nil {
		return models.LoggedEntry{}, err
	}
	return entry, nil
}

func (service *EntryService) Get(userID uint, entryID uint) (models.LoggedEntry, error) {
	entry, found, err := service.entries.FindByIDForUser(userID, entryID)
	if err != nil {
		return models.LoggedEntry{}, err
	}
	if !found {
		return models.LoggedEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (service *EntryService) RecentMeals(userID uint, limit int) ([]models.LoggedEntry, error) {
	return service.entries.ListRecentMeals(userID, limit)
}

func (service *EntryService) Delete(userID uint, entryID uint) (models.LoggedEntry, error) {
	entry, err := service.Get(userID, entryID)
	if err != nil {
		return models.LoggedEntry{}, err
	}
	if err := service.entries.DeleteByIDForUser(userID, entryID); err != nil {
		return models.LoggedEntry{}, err
	}
	return entry, nil
}

func (service *EntryService) occurredOrNow(occurredAt *time.Time) time.Time {
	if occurredAt != nil {
		return occurredAt.UTC()
	}
	return service.now().UTC()
}
