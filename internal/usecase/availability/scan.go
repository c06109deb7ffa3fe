package availability

import (
	"context"
	"time"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
)

// Formats shared by the availability use cases. Slot times go out in
// 12-hour clock, dates as ISO.
const (
	SlotTimeFormat = "03:04 PM"
	DateFormat     = "2006-01-02"
)

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// scanSlots runs one full slot scan for (barber, service, date). Absent
// schedule or unknown service yield an empty scan, never an error; the
// endpoint-facing use case decides whether absence is a 404.
func scanSlots(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	serviceID uint,
	date time.Time,
	now time.Time,
	step time.Duration,
) ([]time.Time, error) {

	sched, err := repo.ScheduleFor(ctx, barberID, date.Weekday().String())
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, nil
	}

	durationMin, err := repo.ServiceDuration(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if durationMin <= 0 {
		return nil, nil
	}
	candidate := time.Duration(durationMin) * time.Minute

	day := midnight(date)

	bookings, err := repo.BookingsOn(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	timeOff, err := repo.ApprovedTimeOffOn(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Busy, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, domain.Busy{
			Start:    domain.OnDate(day, b.StartTime),
			Duration: time.Duration(b.TotalDurationMin) * time.Minute,
		})
	}

	offs := make([]domain.TimeOff, 0, len(timeOff))
	for _, off := range timeOff {
		offs = append(offs, domain.TimeOff{
			Start: domain.OnDate(day, off.StartTime),
			End:   domain.OnDate(day, off.EndTime),
		})
	}

	blocked := domain.BuildBlockedIntervals(busy, offs, candidate)

	return domain.Slots(
		domain.OnDate(day, sched.Start),
		domain.OnDate(day, sched.End),
		candidate,
		step,
		blocked,
		now,
	), nil
}
