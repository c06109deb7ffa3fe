package availability

import (
	"context"
	"time"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

type GetTimeSlots struct {
	repo domain.Repository
	step time.Duration
	now  func() time.Time
}

func NewGetTimeSlots(repo domain.Repository, stepMinutes int) *GetTimeSlots {
	return &GetTimeSlots{
		repo: repo,
		step: time.Duration(stepMinutes) * time.Minute,
		now:  timezone.Now,
	}
}

// Execute returns the bookable start times on the chosen date, in
// ascending 12-hour clock strings. A barber with no schedule row for
// the date's weekday is a business error; everything else that removes
// slots (past date, unknown service, full day) is an empty list.
func (uc *GetTimeSlots) Execute(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
) ([]string, error) {

	sched, err := uc.repo.ScheduleFor(ctx, barberID, date.Weekday().String())
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	slots, err := scanSlots(ctx, uc.repo, barberID, serviceID, date, uc.now(), uc.step)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(SlotTimeFormat))
	}

	return out, nil
}
