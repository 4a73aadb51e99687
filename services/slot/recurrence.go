package slot

import (
	"time"

	"tutorhub/models"
	"tutorhub/timeutil"
)

// candidate is one concrete instance produced by expanding a recurrence rule.
type candidate struct {
	start time.Time // UTC
	end   time.Time // UTC
}

// expandRecurrence turns a recurrence rule plus a time-of-day template into
// concrete UTC instant pairs, one per IST calendar day in the rule's
// inclusive range whose weekday is selected. The template contributes its
// IST wall-clock start and its exact duration. Instances whose start is not
// strictly after now are dropped; the caller treats a fully filtered-out
// expansion as an error.
func expandRecurrence(startTemplate, endTemplate time.Time, rule models.RecurrenceRule, now time.Time) ([]candidate, error) {
	if len(rule.DaysOfWeek) == 0 {
		return nil, validationf("invalid recurrence: no weekdays selected")
	}

	selected := make(map[time.Weekday]bool, len(rule.DaysOfWeek))
	for _, d := range rule.DaysOfWeek {
		if d < 0 || d > 6 {
			return nil, validationf("invalid recurrence: weekday %d out of range 0-6", d)
		}
		selected[time.Weekday(d)] = true
	}

	from, err := timeutil.ParseDate(rule.StartDate)
	if err != nil {
		return nil, validationf("invalid recurrence startDate: %v", err)
	}
	to, err := timeutil.ParseDate(rule.EndDate)
	if err != nil {
		return nil, validationf("invalid recurrence endDate: %v", err)
	}
	if from.After(to) {
		return nil, validationf("invalid recurrence: startDate %s is after endDate %s", rule.StartDate, rule.EndDate)
	}

	duration := endTemplate.Sub(startTemplate)
	local := timeutil.ToIST(startTemplate)
	hour, min, sec := local.Hour(), local.Minute(), local.Second()

	var out []candidate
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !selected[day.Weekday()] {
			continue
		}
		start := timeutil.FromCivil(day.Year(), day.Month(), day.Day(), hour, min, sec, local.Nanosecond())
		if !start.After(now) {
			continue
		}
		out = append(out, candidate{start: start, end: start.Add(duration)})
	}
	return out, nil
}
