package availability

import (
	"context"
	"sort"
	"time"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

type GetBlockedDates struct {
	repo domain.Repository
	step time.Duration
	now  func() time.Time
}

func NewGetBlockedDates(repo domain.Repository, stepMinutes int) *GetBlockedDates {
	return &GetBlockedDates{
		repo: repo,
		step: time.Duration(stepMinutes) * time.Minute,
		now:  timezone.Now,
	}
}

// Execute returns, sorted ascending, every upcoming date that carries a
// booking or approved time-off request and has no bookable slot left.
func (uc *GetBlockedDates) Execute(
	ctx context.Context,
	barberID uint,
) ([]string, error) {

	now := uc.now()
	today := midnight(now)

	dates, err := uc.repo.BusyDatesFrom(ctx, barberID, today)
	if err != nil {
		return nil, err
	}

	blocked := []string{}
	for _, date := range dates {
		// TODO: the slot probe reuses the barber id where a service id
		// is expected, so the padding duration comes from whatever
		// service happens to share that numeric id. Kept as-is until
		// product confirms which service's duration this check should
		// use.
		slots, err := scanSlots(ctx, uc.repo, barberID, barberID, date, now, uc.step)
		if err != nil {
			return nil, err
		}

		if len(slots) == 0 {
			blocked = append(blocked, date.Format(DateFormat))
		}
	}

	sort.Strings(blocked)
	return blocked, nil
}
