package services

import "testing"

func TestNormalizeHealthScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{name: "percent scale", raw: 85, want: 8.5},
		{name: "just above ten", raw: 12, want: 1.2},
		{name: "corrupted above hundred", raw: 150, want: 10.0},
		{name: "negative clamps to zero", raw: -5, want: 0.0},
		{name: "already canonical", raw: 7.5, want: 7.5},
		{name: "zero", raw: 0, want: 0},
		{name: "exactly ten", raw: 10, want: 10},
		{name: "exactly hundred", raw: 100, want: 10},
		{name: "rounds to one decimal", raw: 7.44, want: 7.4},
		{name: "rounds half up", raw: 7.45, want: 7.5},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeHealthScore(&test.raw)
			if got == nil {
				t.Fatalf("NormalizeHealthScore(%v) = nil, want %v", test.raw, test.want)
			}
			if *got != test.want {
				t.Errorf("NormalizeHealthScore(%v) = %v, want %v", test.raw, *got, test.want)
			}

			// Normalizing an already-normalized value must not change it.
			again := NormalizeHealthScore(got)
			if again == nil || *again != *got {
				t.Errorf("second normalization of %v changed %v to %v", test.raw, *got, again)
			}
		})
	}
}

func TestNormalizeHealthScoreNil(t *testing.T) {
	t.Parallel()

	if got := NormalizeHealthScore(nil); got != nil {
		t.Fatalf("NormalizeHealthScore(nil) = %v, want nil", *got)
	}
}

func TestMeanHealthScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []float64
		want   *float64
	}{
		{name: "empty", scores: nil, want: nil},
		{name: "single", scores: []float64{7}, want: floatPtr(7)},
		{name: "rounds mean", scores: []float64{7, 8}, want: floatPtr(7.5)},
		{name: "uneven", scores: []float64{8.5, 6.2, 9.1}, want: floatPtr(7.9)},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := MeanHealthScore(test.scores)
			switch {
			case test.want == nil && got != nil:
				t.Errorf("MeanHealthScore(%v) = %v, want nil", test.scores, *got)
			case test.want != nil && got == nil:
				t.Errorf("MeanHealthScore(%v) = nil, want %v", test.scores, *test.want)
			case test.want != nil && *got != *test.want:
				t.Errorf("MeanHealthScore(%v) = %v, want %v", test.scores, *got, *test.want)
			}
		})
	}
}

func floatPtr(value float64) *float64 {
	return &value
}
