// Package timeutil holds the civil-time arithmetic between UTC instants and
// IST (UTC+5:30) wall-clock dates. IST has no daylight saving, so the offset
// is fixed and every conversion here is lossless.
package timeutil

import (
	"fmt"
	"time"
)

// IST is the fixed +5:30 zone used for all instructor-facing date semantics.
var IST = time.FixedZone("IST", 5*3600+30*60)

// DateLayout is the wire format for IST calendar dates.
const DateLayout = "2006-01-02"

// ToIST returns the same instant expressed in IST wall-clock time.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// FromCivil builds the UTC instant for the given IST wall-clock components.
func FromCivil(year int, month time.Month, day, hour, min, sec, nsec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, nsec, IST).UTC()
}

// ParseDate parses a "YYYY-MM-DD" string as midnight IST of that day.
// The returned time keeps the IST location so Weekday() is the IST weekday.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, IST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDate returns the IST calendar date of the given instant.
func FormatDate(t time.Time) string {
	return t.In(IST).Format(DateLayout)
}

// DayBounds returns the IST calendar day containing t as a UTC instant range:
// 00:00:00.000 through 23:59:59.999 IST.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(IST)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, IST)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start.UTC(), end.UTC()
}

// DayBoundsForDate is DayBounds for a "YYYY-MM-DD" IST date string.
func DayBoundsForDate(date string) (time.Time, time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := DayBounds(day)
	return start, end, nil
}

// MonthBounds returns the half-open UTC instant window covering the given
// IST calendar month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, IST)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// YearBounds returns the half-open UTC instant window covering the given
// IST calendar year.
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, IST)
	return start.UTC(), start.AddDate(1, 0, 0).UTC()
}
