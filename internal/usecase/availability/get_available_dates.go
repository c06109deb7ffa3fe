package availability

import (
	"context"
	"time"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

type GetAvailableDates struct {
	repo        domain.Repository
	horizonDays int
	now         func() time.Time
}

func NewGetAvailableDates(repo domain.Repository, horizonDays int) *GetAvailableDates {
	return &GetAvailableDates{
		repo:        repo,
		horizonDays: horizonDays,
		now:         timezone.Now,
	}
}

// Execute scans the rolling horizon from today and keeps every date on
// which the barber works, the window fits the service, and the date
// carries neither an approved time-off request nor any booking.
//
// This is the coarse, date-level policy: one existing booking drops the
// whole date regardless of remaining capacity. The fine-grained check
// is the slot scan.
func (uc *GetAvailableDates) Execute(
	ctx context.Context,
	serviceID uint,
	barberID uint,
) ([]string, error) {

	durationMin, err := uc.repo.ServiceDuration(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if durationMin <= 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	duration := time.Duration(durationMin) * time.Minute

	entries, err := uc.repo.WeekdaySchedules(ctx, barberID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]domain.ScheduleEntry, len(entries))
	for _, e := range entries {
		byDay[e.DayOfWeek] = e
	}

	today := midnight(uc.now())
	dates := []string{}

	for i := 0; i < uc.horizonDays; i++ {
		date := today.AddDate(0, 0, i)

		entry, ok := byDay[date.Weekday().String()]
		if !ok {
			continue
		}

		start := domain.OnDate(date, entry.Start)
		end := domain.OnDate(date, entry.End)
		if end.Sub(start) < duration {
			continue
		}

		off, err := uc.repo.HasApprovedTimeOffOn(ctx, barberID, date)
		if err != nil {
			return nil, err
		}
		if off {
			continue
		}

		booked, err := uc.repo.HasBookingOn(ctx, barberID, date)
		if err != nil {
			return nil, err
		}
		if booked {
			continue
		}

		dates = append(dates, date.Format(DateFormat))
	}

	return dates, nil
}
