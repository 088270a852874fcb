package services

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// DayWindow is the half-open UTC interval [StartUTC, EndUTC) covering one
// calendar day in the caller's timezone offset.
type DayWindow struct {
	Date     string
	StartUTC time.Time
	EndUTC   time.Time
}

// Contains reports whether an instant falls inside the window. The start
// is inclusive and the end exclusive, so an entry sitting exactly on a
// midnight boundary belongs to exactly one day.
func (window DayWindow) Contains(instant time.Time) bool {
	return !instant.Before(window.StartUTC) && instant.Before(window.EndUTC)
}

// ResolveWindow converts a YYYY-MM-DD date plus a client UTC offset into
// the UTC query window for that local day. The sign convention is
// local = UTC + offset, so an offset of -300 means the client is five
// hours behind UTC. The returned location re-localizes UTC instants for
// display.
func ResolveWindow(dateString string, tzOffsetMinutes int) (DayWindow, *time.Location, error) {
	parsed, err := time.Parse(dateLayout, dateString)
	if err != nil {
		return DayWindow{}, nil, ErrInvalidDate
	}

	location := OffsetLocation(tzOffsetMinutes)
	startLocal := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, location)
	endLocal := startLocal.AddDate(0, 0, 1)

	window := DayWindow{
		Date:     startLocal.Format(dateLayout),
		StartUTC: startLocal.UTC(),
		EndUTC:   endLocal.UTC(),
	}
	return window, location, nil
}

// OffsetLocation builds a fixed-offset location from signed minutes.
func OffsetLocation(tzOffsetMinutes int) *time.Location {
	return time.FixedZone("", tzOffsetMinutes*60)
}

// LocalToday returns the client's current calendar date as a midnight
// instant in the given fixed-offset location.
func LocalToday(now time.Time, location *time.Location) time.Time {
	localized := now.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
