package services

import (
	"time"

	"github.com/caloriesapp/backend/internal/models"
)

// MaxBatchDates bounds the superset window of a batch request; dates past
// the cap are dropped rather than rejected.
const MaxBatchDates = 31

// EntryFetcher loads a user's entries inside [startUTC, endUTC). The
// batch path calls it exactly once regardless of how many dates were
// requested.
type EntryFetcher func(startUTC time.Time, endUTC time.Time) ([]models.LoggedEntry, error)

// BucketizeAndAggregate resolves every requested date to its UTC window,
// issues one fetch spanning the earliest start to the latest end, and
// partitions the result into per-date buckets in a single linear pass.
// Unparsable dates are skipped, duplicate dates share one bucket, and
// dates without entries still come back with zero totals. The output is
// ordered as requested and is entry-for-entry identical to running
// AggregateDay once per date over the same data.
func BucketizeAndAggregate(dates []string, tzOffsetMinutes int, fetch EntryFetcher) ([]DailyTotals, error) {
	if len(dates) > MaxBatchDates {
		dates = dates[:MaxBatchDates]
	}

	location := OffsetLocation(tzOffsetMinutes)

	type bucket struct {
		window  DayWindow
		entries []models.LoggedEntry
	}

	buckets := make(map[string]*bucket, len(dates))
	requested := make([]string, 0, len(dates))
	var minStart, maxEnd time.Time

	for _, dateString := range dates {
		window, _, err := ResolveWindow(dateString, tzOffsetMinutes)
		if err != nil {
			continue
		}
		requested = append(requested, window.Date)
		if _, exists := buckets[window.Date]; exists {
			continue
		}
		buckets[window.Date] = &bucket{window: window}
		if minStart.IsZero() || window.StartUTC.Before(minStart) {
			minStart = window.StartUTC
		}
		if maxEnd.IsZero() || window.EndUTC.After(maxEnd) {
			maxEnd = window.EndUTC
		}
	}

	if len(requested) == 0 {
		return []DailyTotals{}, nil
	}

	entries, err := fetch(minStart, maxEnd)
	if err != nil {
		return nil, err
	}

	// All windows share one offset, so an entry's bucket is simply its
	// local calendar date. Entries between requested windows fall through.
	for _, entry := range entries {
		localDate := entry.OccurredAt.In(location).Format(dateLayout)
		target, wanted := buckets[localDate]
		if !wanted || !target.window.Contains(entry.OccurredAt) {
			continue
		}
		target.entries = append(target.entries, entry)
	}

	aggregated := make(map[string]DailyTotals, len(buckets))
	for date, target := range buckets {
		aggregated[date] = AggregateDay(target.entries, target.window, location)
	}

	results := make([]DailyTotals, 0, len(requested))
	for _, date := range requested {
		results = append(results, aggregated[date])
	}
	return results, nil
}
