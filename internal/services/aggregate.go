package services

import (
	"time"

	"github.com/caloriesapp/backend/internal/models"
)

// EntryProjection is the per-entry slice of a day's ledger, with times
// already formatted in the client's offset.
type EntryProjection struct {
	ID          uint
	Kind        string
	Name        string
	TimeLocal   string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fats        float64
	Fiber       float64
	Sugar       float64
	Sodium      float64
	HealthScore *float64
	AmountML    *int
}

// DailyTotals is the derived view of one local day: nutrient sums over
// the day's entries, the contributing entries themselves, and the mean
// normalized health score. It is recomputed on every request and never
// persisted.
type DailyTotals struct {
	Date        string
	Calories    float64
	Protein     float64
	Fat         float64
	Carbs       float64
	Fiber       float64
	Sugar       float64
	Sodium      float64
	HealthScore *float64
	Entries     []EntryProjection
}

// AggregateDay folds the entries that fall inside the window into daily
// totals. Inclusion is start-inclusive, end-exclusive; missing nutrient
// values count as zero; water entries contribute nothing to the health
// score average.
func AggregateDay(entries []models.LoggedEntry, window DayWindow, location *time.Location) DailyTotals {
	totals := DailyTotals{
		Date:    window.Date,
		Entries: make([]EntryProjection, 0, len(entries)),
	}

	scores := make([]float64, 0, len(entries))
	for _, entry := range entries {
		if !window.Contains(entry.OccurredAt) {
			continue
		}

		projection := EntryProjection{
			ID:        entry.ID,
			Kind:      entry.Kind,
			Name:      entry.DisplayName(),
			TimeLocal: entry.OccurredAt.In(location).Format("15:04"),
			Calories:  valueOrZero(entry.Calories),
			Protein:   valueOrZero(entry.Protein),
			Carbs:     valueOrZero(entry.Carbs),
			Fats:      valueOrZero(entry.Fat),
			Fiber:     valueOrZero(entry.Fiber),
			Sugar:     valueOrZero(entry.Sugar),
			Sodium:    valueOrZero(entry.Sodium),
			AmountML:  entry.AmountML,
		}

		if entry.Kind == models.EntryKindMeal {
			projection.HealthScore = NormalizeHealthScore(entry.RawHealthScore)
			if projection.HealthScore != nil {
				scores = append(scores, *projection.HealthScore)
			}
		}

		totals.Calories += projection.Calories
		totals.Protein += projection.Protein
		totals.Fat += projection.Fats
		totals.Carbs += projection.Carbs
		totals.Fiber += projection.Fiber
		totals.Sugar += projection.Sugar
		totals.Sodium += projection.Sodium
		totals.Entries = append(totals.Entries, projection)
	}

	totals.HealthScore = MeanHealthScore(scores)
	return totals
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
