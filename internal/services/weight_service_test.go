package services

import (
	"testing"
	"time"

	"github.com/caloriesapp/backend/internal/models"
)

func weightAt(createdAt time.Time, weightKG float64) models.WeightLog {
	return models.WeightLog{UserID: 1, WeightKG: weightKG, CreatedAt: createdAt}
}

func TestChangeOverWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		logs       []models.WeightLog
		wantChange *float64
		wantStatus string
	}{
		{
			name:       "empty",
			wantStatus: WeightStatusInsufficientData,
		},
		{
			name:       "single measurement",
			logs:       []models.WeightLog{weightAt(base, 80)},
			wantStatus: WeightStatusInsufficientData,
		},
		{
			name: "loss",
			logs: []models.WeightLog{
				weightAt(base, 82.4),
				weightAt(base.AddDate(0, 0, 3), 81.1),
			},
			wantChange: floatPtr(-1.3),
			wantStatus: WeightStatusLoss,
		},
		{
			name: "gain",
			logs: []models.WeightLog{
				weightAt(base, 70),
				weightAt(base.AddDate(0, 0, 5), 70.5),
			},
			wantChange: floatPtr(0.5),
			wantStatus: WeightStatusGain,
		},
		{
			name: "deadband swallows tiny drift",
			logs: []models.WeightLog{
				weightAt(base, 75.02),
				weightAt(base.AddDate(0, 0, 2), 75.06),
			},
			wantChange: floatPtr(0.0),
			wantStatus: WeightStatusNoChange,
		},
		{
			name: "first and last bracket the middle",
			logs: []models.WeightLog{
				weightAt(base, 90),
				weightAt(base.AddDate(0, 0, 1), 95),
				weightAt(base.AddDate(0, 0, 2), 88),
			},
			wantChange: floatPtr(-2.0),
			wantStatus: WeightStatusLoss,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := changeOverWindow("7_days", test.logs)
			if got.Period != "7_days" {
				t.Errorf("Period = %q, want 7_days", got.Period)
			}
			if got.Status != test.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, test.wantStatus)
			}
			switch {
			case test.wantChange == nil && got.ChangeKG != nil:
				t.Errorf("ChangeKG = %v, want nil", *got.ChangeKG)
			case test.wantChange != nil && got.ChangeKG == nil:
				t.Errorf("ChangeKG = nil, want %v", *test.wantChange)
			case test.wantChange != nil && *got.ChangeKG != *test.wantChange:
				t.Errorf("ChangeKG = %v, want %v", *got.ChangeKG, *test.wantChange)
			}
		})
	}
}

func TestWindowOf(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	logs := []models.WeightLog{
		weightAt(base.AddDate(0, 0, -10), 80),
		weightAt(base.AddDate(0, 0, -3), 79),
		weightAt(base, 78.5),
	}

	recent := windowOf(logs, base.AddDate(0, 0, -7))
	if len(recent) != 2 {
		t.Fatalf("got %d logs, want 2", len(recent))
	}
	if recent[0].WeightKG != 79 || recent[1].WeightKG != 78.5 {
		t.Errorf("window = %v/%v, want 79/78.5", recent[0].WeightKG, recent[1].WeightKG)
	}

	// A measurement sitting exactly on the cutoff stays in.
	exact := windowOf(logs, base.AddDate(0, 0, -3))
	if len(exact) != 2 {
		t.Fatalf("cutoff boundary: got %d logs, want 2", len(exact))
	}
}
