package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// WorkingWindow returns the active window of a working-hours row. It reports
// false for missing, inactive or malformed rows.
func WorkingWindow(wh *models.WorkingHours) (Interval, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return Interval{}, false
	}

	start, err := ParseClock(wh.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseClock(wh.EndTime)
	if err != nil || end <= start {
		return Interval{}, false
	}

	return Interval{Start: start, End: end}, true
}

// IsWithinWorkingHours reports whether the interval fits the stylist's window.
func IsWithinWorkingHours(wh *models.WorkingHours, iv Interval) bool {
	window, ok := WorkingWindow(wh)
	if !ok {
		return false
	}
	return window.Contains(iv)
}
