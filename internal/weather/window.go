package weather

import (
	"fmt"
	"time"
)

// maxWindowDays is the largest inclusive span a date window may cover.
const maxWindowDays = 5

// DateWindow is an inclusive calendar-date range. Start and End are
// midnight-UTC instants; the window covers Start 00:00:00 through
// End 23:59:59.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// StartDate returns the lower bound as YYYY-MM-DD.
func (w DateWindow) StartDate() string {
	return w.Start.Format(time.DateOnly)
}

// EndDate returns the upper bound as YYYY-MM-DD.
func (w DateWindow) EndDate() string {
	return w.End.Format(time.DateOnly)
}

// Days returns the inclusive span in whole days; a zero-width window
// (Start == End) spans 0 days.
func (w DateWindow) Days() int {
	return int(w.End.Sub(w.Start) / (24 * time.Hour))
}

// ValidateRange parses and checks a requested [startDate, endDate] window.
// Both bounds must be YYYY-MM-DD calendar dates, endDate must not precede
// startDate, and the inclusive span must not exceed maxWindowDays.
// startDate == endDate is a valid zero-width window.
func ValidateRange(startDate, endDate string) (DateWindow, error) {
	start, err := time.ParseInLocation(time.DateOnly, startDate, time.UTC)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, startDate)
	}
	end, err := time.ParseInLocation(time.DateOnly, endDate, time.UTC)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, endDate)
	}

	if end.Before(start) {
		return DateWindow{}, ErrInvalidDateOrder
	}

	w := DateWindow{Start: start, End: end}
	if w.Days() > maxWindowDays {
		return DateWindow{}, ErrRangeTooLarge
	}
	return w, nil
}
