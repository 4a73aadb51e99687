package slot

import (
	"context"
	"fmt"
	"time"

	"tutorhub/models"
	"tutorhub/timeutil"
)

// Stats modes accepted by GetSlotStats.
const (
	StatsModeMonthly = "monthly"
	StatsModeYearly  = "yearly"
	StatsModeCustom  = "custom"
)

// GetSlotStats returns per-IST-day slot counts for the window selected by
// mode: one calendar month, one calendar year, or an explicit
// [startDate, endDate) date range.
func (s *DefaultSlotService) GetSlotStats(ctx context.Context, instructorID, mode string, opts models.StatsOptions) ([]models.DailySlotStats, error) {
	var from, to time.Time

	switch mode {
	case StatsModeMonthly:
		if opts.Year == 0 || opts.Month == 0 {
			return nil, validationf("monthly stats require year and month")
		}
		if opts.Month < 1 || opts.Month > 12 {
			return nil, validationf("month must be between 1 and 12")
		}
		from, to = timeutil.MonthBounds(opts.Year, opts.Month)
	case StatsModeYearly:
		if opts.Year == 0 {
			return nil, validationf("yearly stats require year")
		}
		from, to = timeutil.YearBounds(opts.Year)
	case StatsModeCustom:
		if opts.StartDate == "" || opts.EndDate == "" {
			return nil, validationf("custom stats require startDate and endDate")
		}
		start, err := timeutil.ParseDate(opts.StartDate)
		if err != nil {
			return nil, validationf("invalid startDate: %v", err)
		}
		end, err := timeutil.ParseDate(opts.EndDate)
		if err != nil {
			return nil, validationf("invalid endDate: %v", err)
		}
		if !end.After(start) {
			return nil, validationf("endDate must be after startDate")
		}
		from, to = start.UTC(), end.UTC()
	default:
		return nil, validationf("unknown stats mode %q", mode)
	}

	stats, err := s.Repo.DailyStats(ctx, instructorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	return stats, nil
}
