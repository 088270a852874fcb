package services

import "math"

// NormalizeHealthScore maps a stored raw health score onto the canonical
// 0-10 scale with one decimal. The vision models were inconsistent over
// time: some wrote 0-10, some 0-100, and a few wrote garbage. Values
// above 100 are treated as corrupted and clamp to 10; values in (10,100]
// are read as a 0-100 score and divided by 10. Nil passes through.
//
// The function is idempotent for any value already on the 0-10 scale.
func NormalizeHealthScore(raw *float64) *float64 {
	if raw == nil {
		return nil
	}
	normalized := normalizeHealthScoreValue(*raw)
	return &normalized
}

func normalizeHealthScoreValue(raw float64) float64 {
	value := raw
	switch {
	case value > 100:
		value = 10
	case value > 10:
		value = value / 10
	}
	if value < 0 {
		value = 0
	}
	if value > 10 {
		value = 10
	}
	return roundToOneDecimal(value)
}

// MeanHealthScore averages already-normalized per-meal scores. Nil when
// no meal carried a score.
func MeanHealthScore(scores []float64) *float64 {
	if len(scores) == 0 {
		return nil
	}
	var sum float64
	for _, score := range scores {
		sum += score
	}
	mean := roundToOneDecimal(sum / float64(len(scores)))
	return &mean
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
