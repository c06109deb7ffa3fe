package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/numberonebarber/booking-api/internal/audit"
	domain "github.com/numberonebarber/booking-api/internal/domain/booking"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/models"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates a pending booking after the write-boundary checks:
// every selected service is in the barber's qualifications, the full
// appointment fits the schedule window, and it overlaps no existing
// booking or approved time off. The availability endpoints advise; this
// is where double-booking is actually rejected.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services_selected")
	}

	loc := timezone.Location(timezone.DefaultTimezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if !start.After(uc.now()) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil || barber == nil || !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	services, err := uc.repo.GetServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	qualified, err := uc.repo.QualifiedServiceIDs(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	totalMin := 0
	for _, s := range services {
		if !qualified[s.ID] {
			return nil, httperr.ErrBusiness("barber_not_qualified")
		}
		totalMin += s.DurationMin
	}
	end := start.Add(time.Duration(totalMin) * time.Minute)

	sched, err := uc.repo.ScheduleFor(ctx, in.BarberID, start.Weekday().String())
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	workStart := onDate(start, sched.StartTime)
	workEnd := onDate(start, sched.EndTime)
	if start.Before(workStart) || end.After(workEnd) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	existing, err := uc.repo.BookingsOn(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		bStart := onDate(start, b.StartTime)
		bEnd := bStart.Add(time.Duration(b.TotalDurationMin) * time.Minute)
		if start.Before(bEnd) && end.After(bStart) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
	}

	timeOff, err := uc.repo.ApprovedTimeOffOn(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}
	for _, off := range timeOff {
		offStart := onDate(start, off.StartTime)
		offEnd := onDate(start, off.EndTime)
		if start.Before(offEnd) && end.After(offStart) {
			return nil, httperr.ErrBusiness("time_off_conflict")
		}
	}

	b := &models.Booking{
		Reference:   uuid.NewString(),
		BarberID:    in.BarberID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: in.ClientEmail,
		Date:        day,
		StartTime:   in.Time,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b, in.ServiceIDs); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func onDate(ref time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	)
}
