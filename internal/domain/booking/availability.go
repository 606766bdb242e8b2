package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SlotStep is the fixed grid every window is walked on, whatever the
// service duration.
const SlotStep = 30

// MaxDurationMin bounds any service duration to a single day.
const MaxDurationMin = 24 * 60

type AvailabilityInput struct {
	StylistID   uint
	Date        time.Time
	DurationMin int
}

type Slot struct {
	Time      string `json:"hora"`
	Available bool   `json:"disponible"`
}

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Contains(o Interval) bool {
	return o.Start >= i.Start && o.End <= i.End
}

// BusyIntervals converts pending/confirmed reservations into intervals.
// Rows in any other status, or with unreadable times, are skipped.
func BusyIntervals(reservations []models.Reservation) []Interval {
	out := make([]Interval, 0, len(reservations))
	for _, r := range reservations {
		if !Status(r.Status).Blocking() {
			continue
		}
		start, err := ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(r.EndTime)
		if err != nil {
			continue
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out
}

func OverlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// ComputeSlots walks the working window in SlotStep increments and marks each
// start time available when [T, T+duration) fits inside the window and clears
// every busy interval. A nil or inactive window yields no slots.
func ComputeSlots(wh *models.WorkingHours, busy []Interval, durationMin int) []Slot {
	slots := []Slot{}

	window, ok := WorkingWindow(wh)
	if !ok || window.End-window.Start < SlotStep {
		return slots
	}

	for t := window.Start; t < window.End; t += SlotStep {
		available := durationMin <= window.End-t
		if available {
			available = !OverlapsAny(Interval{Start: t, End: t + durationMin}, busy)
		}
		slots = append(slots, Slot{
			Time:      FormatClock(t),
			Available: available,
		})
	}

	return slots
}
