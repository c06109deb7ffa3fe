package availability

import (
	"context"
	"time"
)

// ScheduleWindow is a barber's working hours for one weekday, as
// "15:04" wall-clock strings.
type ScheduleWindow struct {
	Start string
	End   string
}

type ScheduleEntry struct {
	DayOfWeek string
	Start     string
	End       string
}

// BookingRecord is an existing booking on a date, expanded by its
// total selected-service duration.
type BookingRecord struct {
	StartTime        string
	TotalDurationMin int
}

type TimeOffRecord struct {
	StartTime string
	EndTime   string
}

// Repository is the read-only view of persisted scheduling state the
// availability computations run against. Absence is not exceptional:
// lookups return nil (or zero) with a nil error when nothing matches.
type Repository interface {
	// ScheduleFor returns the working hours registered for the weekday
	// name, or nil when the barber has no row for it.
	ScheduleFor(ctx context.Context, barberID uint, weekday string) (*ScheduleWindow, error)

	// WeekdaySchedules returns every schedule row the barber has.
	WeekdaySchedules(ctx context.Context, barberID uint) ([]ScheduleEntry, error)

	// ServiceDuration returns the service duration in minutes, or 0
	// when the service does not exist.
	ServiceDuration(ctx context.Context, serviceID uint) (int, error)

	BookingsOn(ctx context.Context, barberID uint, date time.Time) ([]BookingRecord, error)
	ApprovedTimeOffOn(ctx context.Context, barberID uint, date time.Time) ([]TimeOffRecord, error)

	HasBookingOn(ctx context.Context, barberID uint, date time.Time) (bool, error)
	HasApprovedTimeOffOn(ctx context.Context, barberID uint, date time.Time) (bool, error)

	// BusyDatesFrom returns the distinct ascending dates from `from`
	// onward that carry at least one booking or approved time-off
	// request.
	BusyDatesFrom(ctx context.Context, barberID uint, from time.Time) ([]time.Time, error)
}
