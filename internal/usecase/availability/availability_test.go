package availability

import (
	"context"
	"testing"
	"time"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/httperr"
)

var toronto = func() *time.Location {
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		panic(err)
	}
	return loc
}()

// A Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, toronto)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ------------------------------------------------------
// Fake repository
// ------------------------------------------------------

type fakeRepo struct {
	schedules map[string]domain.ScheduleWindow // weekday name -> window
	durations map[uint]int                     // service id -> minutes
	bookings  map[string][]domain.BookingRecord
	timeOff   map[string][]domain.TimeOffRecord
	busyDates []time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		schedules: map[string]domain.ScheduleWindow{},
		durations: map[uint]int{},
		bookings:  map[string][]domain.BookingRecord{},
		timeOff:   map[string][]domain.TimeOffRecord{},
	}
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (f *fakeRepo) ScheduleFor(_ context.Context, _ uint, weekday string) (*domain.ScheduleWindow, error) {
	w, ok := f.schedules[weekday]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (f *fakeRepo) WeekdaySchedules(_ context.Context, _ uint) ([]domain.ScheduleEntry, error) {
	var entries []domain.ScheduleEntry
	for day, w := range f.schedules {
		entries = append(entries, domain.ScheduleEntry{DayOfWeek: day, Start: w.Start, End: w.End})
	}
	return entries, nil
}

func (f *fakeRepo) ServiceDuration(_ context.Context, serviceID uint) (int, error) {
	return f.durations[serviceID], nil
}

func (f *fakeRepo) BookingsOn(_ context.Context, _ uint, date time.Time) ([]domain.BookingRecord, error) {
	return f.bookings[dayKey(date)], nil
}

func (f *fakeRepo) ApprovedTimeOffOn(_ context.Context, _ uint, date time.Time) ([]domain.TimeOffRecord, error) {
	return f.timeOff[dayKey(date)], nil
}

func (f *fakeRepo) HasBookingOn(_ context.Context, _ uint, date time.Time) (bool, error) {
	return len(f.bookings[dayKey(date)]) > 0, nil
}

func (f *fakeRepo) HasApprovedTimeOffOn(_ context.Context, _ uint, date time.Time) (bool, error) {
	return len(f.timeOff[dayKey(date)]) > 0, nil
}

func (f *fakeRepo) BusyDatesFrom(_ context.Context, _ uint, _ time.Time) ([]time.Time, error) {
	return f.busyDates, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------
// GetTimeSlots
// ------------------------------------------------------

func TestGetTimeSlotsNoSchedule(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetTimeSlots(repo, 15)

	_, err := uc.Execute(context.Background(), 1, 1, monday)
	if !httperr.IsBusiness(err, "schedule_not_found") {
		t.Fatalf("expected schedule_not_found, got %v", err)
	}
}

func TestGetTimeSlotsFullDay(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30

	uc := NewGetTimeSlots(repo, 15)
	uc.now = fixedNow(monday.AddDate(0, 0, -1))

	slots, err := uc.Execute(context.Background(), 1, 1, monday)
	if err != nil {
		t.Fatal(err)
	}

	// 09:00 through 16:30 on a 15-minute grid.
	if len(slots) != 31 {
		t.Fatalf("expected 31 slots, got %d", len(slots))
	}
	if slots[0] != "09:00 AM" {
		t.Errorf("first slot = %q, want 09:00 AM", slots[0])
	}
	if slots[len(slots)-1] != "04:30 PM" {
		t.Errorf("last slot = %q, want 04:30 PM", slots[len(slots)-1])
	}
}

func TestGetTimeSlotsPastDateIsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30

	uc := NewGetTimeSlots(repo, 15)
	uc.now = fixedNow(monday.AddDate(0, 0, 7))

	slots, err := uc.Execute(context.Background(), 1, 1, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on a past date, got %v", slots)
	}
}

func TestGetTimeSlotsUnknownServiceIsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}

	uc := NewGetTimeSlots(repo, 15)
	uc.now = fixedNow(monday.AddDate(0, 0, -1))

	slots, err := uc.Execute(context.Background(), 1, 99, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("unknown service should yield no slots, got %v", slots)
	}
}

func TestGetTimeSlotsBookingBlocksNeighborhood(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30
	repo.bookings[dayKey(monday)] = []domain.BookingRecord{
		{StartTime: "10:00", TotalDurationMin: 30},
	}

	uc := NewGetTimeSlots(repo, 15)
	uc.now = fixedNow(monday.AddDate(0, 0, -1))

	slots, err := uc.Execute(context.Background(), 1, 1, monday)
	if err != nil {
		t.Fatal(err)
	}

	removed := map[string]bool{"09:30 AM": true, "09:45 AM": true, "10:00 AM": true, "10:15 AM": true}
	for _, s := range slots {
		if removed[s] {
			t.Errorf("slot %q overlaps the 10:00 booking", s)
		}
	}

	found := false
	for _, s := range slots {
		if s == "10:30 AM" {
			found = true
		}
	}
	if !found {
		t.Error("10:30 AM should be bookable right after the booking")
	}
}

func TestGetTimeSlotsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30

	uc := NewGetTimeSlots(repo, 15)
	uc.now = fixedNow(monday.AddDate(0, 0, -1))

	first, err := uc.Execute(context.Background(), 1, 1, monday)
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Execute(context.Background(), 1, 1, monday)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("scans disagree: %d vs %d slots", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("scans disagree at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

// ------------------------------------------------------
// GetAvailableDates
// ------------------------------------------------------

func TestGetAvailableDatesUnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailableDates(repo, 30)

	_, err := uc.Execute(context.Background(), 99, 1)
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestGetAvailableDatesHorizonScan(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30

	// The second Monday in the horizon carries a booking: the coarse
	// date-level policy drops the whole date.
	secondMonday := monday.AddDate(0, 0, 7)
	repo.bookings[dayKey(secondMonday)] = []domain.BookingRecord{
		{StartTime: "10:00", TotalDurationMin: 30},
	}

	uc := NewGetAvailableDates(repo, 14)
	uc.now = fixedNow(monday)

	dates, err := uc.Execute(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	// 14-day horizon from a Monday holds two Mondays, one of them busy.
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %v", dates)
	}
	if dates[0] != monday.Format(DateFormat) {
		t.Errorf("dates[0] = %q, want %q", dates[0], monday.Format(DateFormat))
	}
}

func TestGetAvailableDatesWindowTooShort(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "09:30"}
	repo.durations[1] = 45

	uc := NewGetAvailableDates(repo, 14)
	uc.now = fixedNow(monday)

	dates, err := uc.Execute(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 0 {
		t.Errorf("a window shorter than the service should yield no dates, got %v", dates)
	}
}

func TestGetAvailableDatesTimeOffDropsDate(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30
	repo.timeOff[dayKey(monday)] = []domain.TimeOffRecord{
		{StartTime: "09:00", EndTime: "09:15"},
	}

	uc := NewGetAvailableDates(repo, 7)
	uc.now = fixedNow(monday)

	dates, err := uc.Execute(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Even a 15-minute approved absence excludes the date at this level.
	if len(dates) != 0 {
		t.Errorf("expected no dates, got %v", dates)
	}
}

func TestGetAvailableDatesChronological(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.schedules["Wednesday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[1] = 30

	uc := NewGetAvailableDates(repo, 10)
	uc.now = fixedNow(monday)

	dates, err := uc.Execute(context.Background(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(dates); i++ {
		if dates[i] <= dates[i-1] {
			t.Fatalf("dates out of order: %v", dates)
		}
	}
}

// ------------------------------------------------------
// GetBlockedDates
// ------------------------------------------------------

func TestGetBlockedDates(t *testing.T) {
	const barberID = 7

	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}

	// The probe duration is resolved by the barber's own id.
	repo.durations[barberID] = 30

	fullDay := monday
	freeDay := monday.AddDate(0, 0, 7)

	repo.busyDates = []time.Time{freeDay, fullDay}
	repo.timeOff[dayKey(fullDay)] = []domain.TimeOffRecord{
		{StartTime: "09:00", EndTime: "17:00"},
	}
	repo.bookings[dayKey(freeDay)] = []domain.BookingRecord{
		{StartTime: "10:00", TotalDurationMin: 30},
	}

	uc := NewGetBlockedDates(repo, 15)
	uc.now = fixedNow(monday.Add(-time.Hour))

	blocked, err := uc.Execute(context.Background(), barberID)
	if err != nil {
		t.Fatal(err)
	}

	if len(blocked) != 1 {
		t.Fatalf("expected 1 blocked date, got %v", blocked)
	}
	if blocked[0] != fullDay.Format(DateFormat) {
		t.Errorf("blocked[0] = %q, want %q", blocked[0], fullDay.Format(DateFormat))
	}
}

func TestGetBlockedDatesSorted(t *testing.T) {
	const barberID = 7

	repo := newFakeRepo()
	repo.schedules["Monday"] = domain.ScheduleWindow{Start: "09:00", End: "17:00"}
	repo.durations[barberID] = 30

	later := monday.AddDate(0, 0, 14)
	earlier := monday.AddDate(0, 0, 7)

	repo.busyDates = []time.Time{later, earlier}
	for _, d := range repo.busyDates {
		repo.timeOff[dayKey(d)] = []domain.TimeOffRecord{
			{StartTime: "09:00", EndTime: "17:00"},
		}
	}

	uc := NewGetBlockedDates(repo, 15)
	uc.now = fixedNow(monday)

	blocked, err := uc.Execute(context.Background(), barberID)
	if err != nil {
		t.Fatal(err)
	}

	if len(blocked) != 2 {
		t.Fatalf("expected 2 blocked dates, got %v", blocked)
	}
	if blocked[0] != earlier.Format(DateFormat) || blocked[1] != later.Format(DateFormat) {
		t.Errorf("blocked dates out of order: %v", blocked)
	}
}
