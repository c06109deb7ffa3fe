package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/numberonebarber/booking-api/internal/domain/booking"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/models"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

// A Monday.
const testDate = "2026-09-07"

func fixedNow(s string) func() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, timezone.Location(timezone.DefaultTimezone))
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

// ------------------------------------------------------
// Fake repository
// ------------------------------------------------------

type fakeRepo struct {
	barber    *models.Barber
	services  map[uint]models.Service
	qualified map[uint]bool
	schedule  *models.BarberSchedule
	bookings  []domain.ExistingBooking
	timeOff   []models.TimeOffRequest

	created           *models.Booking
	createdServiceIDs []uint
	stored            map[uint]*models.Booking
	updated           *models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barber:    &models.Barber{ID: 1, Name: "Sam", Active: true},
		services:  map[uint]models.Service{},
		qualified: map[uint]bool{},
		schedule:  &models.BarberSchedule{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"},
		stored:    map[uint]*models.Booking{},
	}
}

func (f *fakeRepo) GetBarber(_ context.Context, _ uint) (*models.Barber, error) {
	return f.barber, nil
}

func (f *fakeRepo) GetServices(_ context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) QualifiedServiceIDs(_ context.Context, _ uint) (map[uint]bool, error) {
	return f.qualified, nil
}

func (f *fakeRepo) ScheduleFor(_ context.Context, _ uint, _ string) (*models.BarberSchedule, error) {
	return f.schedule, nil
}

func (f *fakeRepo) BookingsOn(_ context.Context, _ uint, _ time.Time) ([]domain.ExistingBooking, error) {
	return f.bookings, nil
}

func (f *fakeRepo) ApprovedTimeOffOn(_ context.Context, _ uint, _ time.Time) ([]models.TimeOffRequest, error) {
	return f.timeOff, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking, serviceIDs []uint) error {
	b.ID = 42
	f.created = b
	f.createdServiceIDs = serviceIDs
	return nil
}

func (f *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := f.stored[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.updated = b
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func validInput() CreateBookingInput {
	return CreateBookingInput{
		BarberID:    1,
		ClientName:  "Alex",
		ClientPhone: "+14165550100",
		ServiceIDs:  []uint{1},
		Date:        testDate,
		Time:        "10:00",
	}
}

func newCreateUC(repo *fakeRepo) *CreateBooking {
	uc := NewCreateBooking(repo, nil)
	uc.now = fixedNow("2026-09-01 08:00")
	return uc
}

// ------------------------------------------------------
// CreateBooking
// ------------------------------------------------------

func TestCreateBookingSuccess(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, Name: "Haircut", DurationMin: 30}
	repo.qualified[1] = true

	uc := newCreateUC(repo)

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	if b.Status != string(domain.StatusPending) {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if b.Reference == "" {
		t.Error("reference should be generated")
	}
	if b.StartTime != "10:00" {
		t.Errorf("start time = %q, want 10:00", b.StartTime)
	}
	if len(repo.createdServiceIDs) != 1 || repo.createdServiceIDs[0] != 1 {
		t.Errorf("service ids persisted = %v, want [1]", repo.createdServiceIDs)
	}
}

func TestCreateBookingNoServices(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	in := validInput()
	in.ServiceIDs = nil

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "no_services_selected") {
		t.Fatalf("expected no_services_selected, got %v", err)
	}
}

func TestCreateBookingBadDate(t *testing.T) {
	uc := newCreateUC(newFakeRepo())

	in := validInput()
	in.Date = "07/09/2026"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Fatalf("expected invalid_date_or_time, got %v", err)
	}
}

func TestCreateBookingInThePast(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}
	repo.qualified[1] = true

	uc := NewCreateBooking(repo, nil)
	uc.now = fixedNow("2026-09-07 12:00")

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "in_the_past") {
		t.Fatalf("expected in_the_past, got %v", err)
	}
}

func TestCreateBookingInactiveBarber(t *testing.T) {
	repo := newFakeRepo()
	repo.barber.Active = false
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}
	repo.qualified[1] = true

	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "barber_not_found") {
		t.Fatalf("expected barber_not_found, got %v", err)
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestCreateBookingUnqualifiedBarber(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}

	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "barber_not_qualified") {
		t.Fatalf("expected barber_not_qualified, got %v", err)
	}
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, DurationMin: 90}
	repo.qualified[1] = true

	uc := newCreateUC(repo)

	// 16:00 + 90 minutes runs past the 17:00 close.
	in := validInput()
	in.Time = "16:00"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("expected outside_working_hours, got %v", err)
	}
}

func TestCreateBookingNoScheduleRow(t *testing.T) {
	repo := newFakeRepo()
	repo.schedule = nil
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}
	repo.qualified[1] = true

	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("expected outside_working_hours, got %v", err)
	}
}

func TestCreateBookingTimeConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}
	repo.qualified[1] = true
	repo.bookings = []domain.ExistingBooking{{StartTime: "10:15", TotalDurationMin: 30}}

	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}
}

func TestCreateBookingBackToBackIsFine(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}
	repo.qualified[1] = true
	repo.bookings = []domain.ExistingBooking{{StartTime: "10:30", TotalDurationMin: 30}}

	uc := newCreateUC(repo)

	// 10:00-10:30 ends exactly when the existing booking starts.
	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("back-to-back booking should be allowed, got %v", err)
	}
}

func TestCreateBookingTimeOffConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1] = models.Service{ID: 1, DurationMin: 30}
	repo.qualified[1] = true
	repo.timeOff = []models.TimeOffRequest{{StartTime: "10:00", EndTime: "11:00"}}

	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "time_off_conflict") {
		t.Fatalf("expected time_off_conflict, got %v", err)
	}
}

// ------------------------------------------------------
// UpdateBookingStatus
// ------------------------------------------------------

func TestUpdateBookingStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.stored[42] = &models.Booking{ID: 42, Status: string(domain.StatusPending)}

	uc := NewUpdateBookingStatus(repo, nil)

	b, err := uc.Execute(context.Background(), 42, nil, domain.StatusConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q, want confirmed", b.Status)
	}
	if repo.updated == nil {
		t.Error("update was not persisted")
	}
}

func TestUpdateBookingStatusUnknownStatus(t *testing.T) {
	uc := NewUpdateBookingStatus(newFakeRepo(), nil)

	_, err := uc.Execute(context.Background(), 42, nil, "archived")
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	uc := NewUpdateBookingStatus(newFakeRepo(), nil)

	_, err := uc.Execute(context.Background(), 42, nil, domain.StatusConfirmed)
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("expected booking_not_found, got %v", err)
	}
}

func TestUpdateBookingStatusIllegalTransition(t *testing.T) {
	repo := newFakeRepo()
	repo.stored[42] = &models.Booking{ID: 42, Status: string(domain.StatusCompleted)}

	uc := NewUpdateBookingStatus(repo, nil)

	_, err := uc.Execute(context.Background(), 42, nil, domain.StatusPending)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}
