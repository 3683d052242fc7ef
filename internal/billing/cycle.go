// Package billing computes the active billing-cycle window for expense
// queries. A cycle runs from a configured start day to the day before the
// same start day in the following month, clamped for short months so that
// cycles tile the calendar without gaps or overlaps.
package billing

import (
	"fmt"
	"time"
)

// Window is the inclusive date range of one billing cycle. Start is
// normalized to 00:00:00.000 and End to 23:59:59.999; it is derived on
// every query and never persisted.
type Window struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Compute returns the cycle containing ref for the given start-of-cycle
// day. startDay outside 1..31 is a caller bug and returns an error; every
// in-range value is valid for every month via clamping (day 31 behaves as
// day 30 in a 30-day month, 29 clamps to 28 around a non-leap February).
func Compute(startDay int, ref time.Time) (Window, error) {
	if startDay < 1 || startDay > 31 {
		return Window{}, fmt.Errorf("billing cycle start day must be 1..31, got %d", startDay)
	}

	year, month := ref.Year(), ref.Month()

	// Clamp against the reference month to see whether the cycle has
	// started yet this month.
	clamped := clampDay(startDay, year, month)

	var start time.Time
	if ref.Day() < clamped {
		// Cycle began last month; re-clamp against that month's length.
		py, pm := prevMonth(year, month)
		start = dayStart(py, pm, clampDay(startDay, py, pm), ref.Location())
	} else {
		start = dayStart(year, month, clamped, ref.Location())
	}

	// End is always the day before the next cycle's start, never computed
	// independently: this is what makes consecutive cycles contiguous.
	ny, nm := nextMonth(start.Year(), start.Month())
	nextStart := dayStart(ny, nm, clampDay(startDay, ny, nm), ref.Location())
	end := nextStart.AddDate(0, 0, -1)

	return Window{
		Start: start,
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location()),
	}, nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(day, year int, month time.Month) int {
	if max := DaysInMonth(year, month); day > max {
		return max
	}
	return day
}

func dayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
