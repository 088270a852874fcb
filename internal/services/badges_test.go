package services

import "testing"

func TestBadgeCatalogWellFormed(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, len(BadgeCatalog))
	for _, badge := range BadgeCatalog {
		if badge.ID == "" || badge.Title == "" || badge.Category == "" {
			t.Errorf("badge %+v missing required fields", badge)
		}
		if _, duplicate := seen[badge.ID]; duplicate {
			t.Errorf("duplicate badge id %q", badge.ID)
		}
		seen[badge.ID] = struct{}{}
	}
}

func TestBadgeByID(t *testing.T) {
	t.Parallel()

	badge, found := BadgeByID("streak_7")
	if !found {
		t.Fatal("streak_7 missing from catalogue")
	}
	if badge.Title != "Week of Strength" {
		t.Errorf("Title = %q, want Week of Strength", badge.Title)
	}

	if _, found := BadgeByID("no_such_badge"); found {
		t.Error("unknown id reported as found")
	}
}

func TestBadgeEligibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		badgeID string
		stats   UserStats
		want    bool
	}{
		{badgeID: "streak_3", stats: UserStats{StreakCount: 3}, want: true},
		{badgeID: "streak_3", stats: UserStats{StreakCount: 2}, want: false},
		{badgeID: "streak_7", stats: UserStats{StreakCount: 10}, want: true},
		{badgeID: "first_meal", stats: UserStats{MealsCount: 1}, want: true},
		{badgeID: "meals_100", stats: UserStats{MealsCount: 99}, want: false},
		{badgeID: "healthy_first", stats: UserStats{HealthyMealsCount: 1}, want: true},
		{badgeID: "healthy_first", stats: UserStats{MealsCount: 50}, want: false},
		{badgeID: "weight_first", stats: UserStats{WeightLogsCount: 1}, want: true},
		{badgeID: "variety_25", stats: UserStats{UniqueMealsCount: 25}, want: true},
		{badgeID: "collector_5", stats: UserStats{EarnedBadgesCount: 5}, want: true},
		{badgeID: "collector_5", stats: UserStats{EarnedBadgesCount: 4}, want: false},
	}

	for _, test := range tests {
		badge, found := BadgeByID(test.badgeID)
		if !found {
			t.Fatalf("badge %q missing from catalogue", test.badgeID)
		}
		if badge.Eligible == nil {
			t.Fatalf("badge %q has no eligibility rule", test.badgeID)
		}
		if got := badge.Eligible(test.stats); got != test.want {
			t.Errorf("%s with %+v = %v, want %v", test.badgeID, test.stats, got, test.want)
		}
	}
}

func TestManualBadgesHaveNoRule(t *testing.T) {
	t.Parallel()

	// Water and daily-goal badges depend on history the counters do not
	// capture yet, so the evaluator must skip them.
	for _, id := range []string{"water_first", "water_week", "goal_first", "goal_month", "healthy_week"} {
		badge, found := BadgeByID(id)
		if !found {
			t.Fatalf("badge %q missing from catalogue", id)
		}
		if badge.Eligible != nil {
			t.Errorf("badge %q unexpectedly has an eligibility rule", id)
		}
	}
}
