package availability

import "time"

// BlockedInterval is a half-open [Start, End) range in which a new
// appointment of the candidate duration cannot start. Intervals are
// never merged; a candidate start is rejected when any interval
// contains it.
type BlockedInterval struct {
	Start time.Time
	End   time.Time
}

func (iv BlockedInterval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Busy is an existing booking expanded to its effective duration (the
// sum of its selected services, zero when none were selected).
type Busy struct {
	Start    time.Time
	Duration time.Duration
}

// TimeOff is an approved time-off window on the scanned date.
type TimeOff struct {
	Start time.Time
	End   time.Time
}

// BuildBlockedIntervals pads every commitment backward by the candidate
// service duration, so that "would a candidate appointment starting at t
// overlap this commitment" becomes a point-containment test on t.
func BuildBlockedIntervals(bookings []Busy, timeOff []TimeOff, candidate time.Duration) []BlockedInterval {
	blocked := make([]BlockedInterval, 0, len(bookings)+len(timeOff))

	for _, b := range bookings {
		blocked = append(blocked, BlockedInterval{
			Start: b.Start.Add(-candidate),
			End:   b.Start.Add(b.Duration),
		})
	}

	for _, off := range timeOff {
		blocked = append(blocked, BlockedInterval{
			Start: off.Start.Add(-candidate),
			End:   off.End,
		})
	}

	return blocked
}

// Slots walks the working window on a fixed grid and returns every
// start time at which a candidate appointment still fits.
//
// The last legal start is windowEnd - candidate; grid points past it are
// never emitted, even when the candidate duration is not grid-aligned.
// Start times at or before now are skipped, which also empties out past
// dates. All times must share one location.
func Slots(windowStart, windowEnd time.Time, candidate, step time.Duration, blocked []BlockedInterval, now time.Time) []time.Time {
	if candidate <= 0 || step <= 0 {
		return nil
	}

	adjustedEnd := windowEnd.Add(-candidate)
	if adjustedEnd.Before(windowStart) {
		return nil
	}

	var slots []time.Time
	for t := windowStart; !t.After(adjustedEnd); t = t.Add(step) {
		if !t.After(now) {
			continue
		}
		if blockedAt(blocked, t) {
			continue
		}
		slots = append(slots, t)
	}

	return slots
}

func blockedAt(blocked []BlockedInterval, t time.Time) bool {
	for _, iv := range blocked {
		if iv.Contains(t) {
			return true
		}
	}
	return false
}

// OnDate anchors a "15:04" wall-clock string on the given date. An
// unparsable clock yields the zero time, which collapses the resulting
// window to an empty slot set downstream.
func OnDate(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// ClockValid reports whether s is a well-formed "15:04" time of day.
func ClockValid(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
