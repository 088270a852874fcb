package services

import (
	"errors"
	"testing"
	"time"
)

func TestEntryServiceMealLifecycle(t *testing.T) {
	t.Parallel()

	_, repos := openTestRepos(t)
	user := createTestUser(t, repos)

	service := NewEntryService(repos.Entries)
	service.now = func() time.Time {
		return time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC)
	}

	photo := PhotoMeta{
		ObjectKey: "meals/1/abc.jpg",
		FileName:  "lunch.jpg",
		FileSize:  1024,
		MimeType:  "image/jpeg",
	}
	entry, err := service.LogMeal(user.ID, photo, nil, nil, nil)
	if err != nil {
		t.Fatalf("LogMeal returned error: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("LogMeal did not assign an id")
	}
	if !entry.OccurredAt.Equal(time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("OccurredAt = %v, want the clock time", entry.OccurredAt)
	}
	if entry.Calories != nil {
		t.Error("nutrients must stay unset until analysis runs")
	}

	detected := "Pasta carbonara"
	updated, err := service.ApplyEstimate(user.ID, entry.ID, NutrientEstimate{
		DetectedName: &detected,
		Calories:     floatPtr(850),
		Protein:      floatPtr(30),
		HealthScore:  floatPtr(45),
	})
	if err != nil {
		t.Fatalf("ApplyEstimate returned error: %v", err)
	}
	if updated.DetectedMealName == nil || *updated.DetectedMealName != detected {
		t.Errorf("DetectedMealName = %v, want %q", updated.DetectedMealName, detected)
	}
	if updated.Calories == nil || *updated.Calories != 850 {
		t.Errorf("Calories = %v, want 850", updated.Calories)
	}
	// The score is stored raw; reads normalize it.
	if updated.RawHealthScore == nil || *updated.RawHealthScore != 45 {
		t.Errorf("RawHealthScore = %v, want 45", updated.RawHealthScore)
	}

	name := "Carbonara"
	when := time.Date(2025, 1, 10, 13, 0, 0, 0, time.FixedZone("", 3600))
	corrected, err := service.Correct(user.ID, entry.ID, EntryCorrection{
		MealName:   &name,
		OccurredAt: &when,
		Calories:   floatPtr(700),
	})
	if err != nil {
		t.Fatalf("Correct returned error: %v", err)
	}
	if corrected.MealName == nil || *corrected.MealName != name {
		t.Errorf("MealName = %v, want %q", corrected.MealName, name)
	}
	if !corrected.OccurredAt.Equal(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("OccurredAt = %v, want 12:00 UTC", corrected.OccurredAt)
	}
	if corrected.Calories == nil || *corrected.Calories != 700 {
		t.Errorf("Calories = %v, want 700", corrected.Calories)
	}
	// Untouched fields survive a partial correction.
	if corrected.Protein == nil || *corrected.Protein != 30 {
		t.Errorf("Protein = %v, want 30", corrected.Protein)
	}

	meals, err := service.RecentMeals(user.ID, 10)
	if err != nil {
		t.Fatalf("RecentMeals returned error: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != entry.ID {
		t.Fatalf("RecentMeals = %+v, want the one meal", meals)
	}

	deleted, err := service.Delete(user.ID, entry.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ObjectKey != photo.ObjectKey {
		t.Errorf("deleted ObjectKey = %q, want %q", deleted.ObjectKey, photo.ObjectKey)
	}
	if _, err := service.Get(user.ID, entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Get after delete = %v, want ErrEntryNotFound", err)
	}
}

func TestEntryServiceWater(t *testing.T) {
	t.Parallel()

	_, repos := openTestRepos(t)
	user := createTestUser(t, repos)

	service := NewEntryService(repos.Entries)
	when := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	entry, err := service.LogWater(user.ID, 250, &when)
	if err != nil {
		t.Fatalf("LogWater returned error: %v", err)
	}
	if entry.Kind != "water" {
		t.Errorf("Kind = %q, want water", entry.Kind)
	}
	if entry.AmountML == nil || *entry.AmountML != 250 {
		t.Errorf("AmountML = %v, want 250", entry.AmountML)
	}

	// Water never shows up in the meal list.
	meals, err := service.RecentMeals(user.ID, 10)
	if err != nil {
		t.Fatalf("RecentMeals returned error: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("RecentMeals returned %d entries, want 0", len(meals))
	}
}

func TestEntryServiceCrossUserIsolation(t *testing.T) {
	t.Parallel()

	_, repos := openTestRepos(t)
	owner := createTestUser(t, repos)
	other := createUserWithEmail(t, repos, "other@example.com")

	service := NewEntryService(repos.Entries)
	entry, err := service.LogMeal(owner.ID, PhotoMeta{ObjectKey: "meals/1/x.jpg", FileName: "x.jpg"}, nil, nil, nil)
	if err != nil {
		t.Fatalf("LogMeal returned error: %v", err)
	}

	if _, err := service.Get(other.ID, entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("foreign Get = %v, want ErrEntryNotFound", err)
	}
	if _, err := service.Delete(other.ID, entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("foreign Delete = %v, want ErrEntryNotFound", err)
	}
	if _, err := service.Get(owner.ID, entry.ID); err != nil {
		t.Fatalf("owner lost access to their own entry: %v", err)
	}
}
