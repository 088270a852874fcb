package services

import "time"

// StreakState is the persisted per-user streak: the count of consecutive
// local days the calorie target was met, and the local calendar day most
// recently evaluated. LastAchievedDate nil implies Count zero.
type StreakState struct {
	Count            int
	LastAchievedDate *time.Time
}

// Equal compares two states by value, treating the achieved dates as
// calendar days.
func (state StreakState) Equal(other StreakState) bool {
	if state.Count != other.Count {
		return false
	}
	if (state.LastAchievedDate == nil) != (other.LastAchievedDate == nil) {
		return false
	}
	if state.LastAchievedDate == nil {
		return true
	}
	return midnightUTC(*state.LastAchievedDate).Equal(midnightUTC(*other.LastAchievedDate))
}

// StreakInput is everything one streak evaluation needs. Dates are local
// calendar days at midnight; Today is the caller's current local date.
type StreakInput struct {
	EvaluatedDate  time.Time
	Today          time.Time
	TotalCalories  float64
	TargetCalories *float64
}

// NextStreakState decides the streak transition for one evaluated day.
// It is pure: persistence happens elsewhere, inside the same transaction
// as the aggregation read that produced TotalCalories.
//
// Rules, in order: no target means no transition; future days are
// ignored; a last-achieved date older than yesterday zeroes the count
// (self-healing for days the app was never opened); evaluating a date
// earlier than one already evaluated never regresses state; otherwise
// the day is scored against the target. A missed day zeroes the count
// but still advances LastAchievedDate, so re-evaluating the same day with
// the same totals is a no-op either way.
func NextStreakState(current StreakState, input StreakInput) StreakState {
	next := normalizeStreakState(current)

	if input.TargetCalories == nil || *input.TargetCalories <= 0 {
		return next
	}

	evaluated := midnightUTC(input.EvaluatedDate)
	today := midnightUTC(input.Today)
	if evaluated.After(today) {
		return next
	}

	if next.LastAchievedDate != nil {
		last := midnightUTC(*next.LastAchievedDate)
		if daysBetween(last, evaluated) > 1 {
			next.Count = 0
		}
		if evaluated.Before(last) {
			return next
		}
	}

	achieved := input.TotalCalories >= *input.TargetCalories
	if achieved {
		switch {
		case next.LastAchievedDate == nil:
			next.Count = 1
		case daysBetween(midnightUTC(*next.LastAchievedDate), evaluated) == 0:
			// Same day re-evaluated, nothing to do.
		case daysBetween(midnightUTC(*next.LastAchievedDate), evaluated) == 1:
			next.Count++
		default:
			next.Count = 1
		}
	} else {
		next.Count = 0
	}

	next.LastAchievedDate = &evaluated
	return next
}

// normalizeStreakState repairs the invariant that a nil date means a
// zero count before any rule runs.
func normalizeStreakState(state StreakState) StreakState {
	if state.LastAchievedDate == nil {
		state.Count = 0
		return state
	}
	date := midnightUTC(*state.LastAchievedDate)
	state.LastAchievedDate = &date
	return state
}

// midnightUTC collapses an instant to its calendar day, stored at
// midnight UTC so day arithmetic is plain division.
func midnightUTC(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from time.Time, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
