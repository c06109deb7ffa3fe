package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
	ucAvailability "github.com/numberonebarber/booking-api/internal/usecase/availability"
)

// ------------------------------------------------------
// Fake availability repository
// ------------------------------------------------------

type fakeAvailabilityRepo struct {
	schedules map[string]domain.ScheduleWindow
	durations map[uint]int
}

func (f *fakeAvailabilityRepo) ScheduleFor(_ context.Context, _ uint, weekday string) (*domain.ScheduleWindow, error) {
	w, ok := f.schedules[weekday]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (f *fakeAvailabilityRepo) WeekdaySchedules(_ context.Context, _ uint) ([]domain.ScheduleEntry, error) {
	var entries []domain.ScheduleEntry
	for day, w := range f.schedules {
		entries = append(entries, domain.ScheduleEntry{DayOfWeek: day, Start: w.Start, End: w.End})
	}
	return entries, nil
}

func (f *fakeAvailabilityRepo) ServiceDuration(_ context.Context, serviceID uint) (int, error) {
	return f.durations[serviceID], nil
}

func (f *fakeAvailabilityRepo) BookingsOn(_ context.Context, _ uint, _ time.Time) ([]domain.BookingRecord, error) {
	return nil, nil
}

func (f *fakeAvailabilityRepo) ApprovedTimeOffOn(_ context.Context, _ uint, _ time.Time) ([]domain.TimeOffRecord, error) {
	return nil, nil
}

func (f *fakeAvailabilityRepo) HasBookingOn(_ context.Context, _ uint, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeAvailabilityRepo) HasApprovedTimeOffOn(_ context.Context, _ uint, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeAvailabilityRepo) BusyDatesFrom(_ context.Context, _ uint, _ time.Time) ([]time.Time, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeAvailabilityRepo)(nil)

func newTestRouter(repo domain.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewPublicHandler(
		nil,
		ucAvailability.NewGetTimeSlots(repo, 15),
		ucAvailability.NewGetAvailableDates(repo, 30),
		ucAvailability.NewGetBlockedDates(repo, 15),
		nil,
	)

	r := gin.New()
	r.GET("/api/available-dates", h.AvailableDates)
	r.GET("/api/available-time-slots", h.AvailableTimeSlots)
	r.GET("/api/blocked-dates", h.BlockedDates)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	msg, _ := body["error"].(string)
	return msg
}

// ------------------------------------------------------
// Tests
// ------------------------------------------------------

func TestAvailableDatesMissingParams(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{})

	w := doGet(t, r, "/api/available-dates?service_id=1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got != "Service ID and Barber ID are required." {
		t.Errorf("error = %q", got)
	}
}

func TestAvailableDatesUnknownService(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{durations: map[uint]int{}})

	w := doGet(t, r, "/api/available-dates?service_id=9&barber_id=1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAvailableTimeSlotsMissingParams(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{})

	w := doGet(t, r, "/api/available-time-slots?service_id=1&barber_id=1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got != "Service ID, Barber ID, and Date are required." {
		t.Errorf("error = %q", got)
	}
}

func TestAvailableTimeSlotsBadDate(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{})

	w := doGet(t, r, "/api/available-time-slots?service_id=1&barber_id=1&date=09-07-2026")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAvailableTimeSlotsNoSchedule(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{})

	w := doGet(t, r, "/api/available-time-slots?service_id=1&barber_id=1&date=2030-01-07")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := errorBody(t, w); got != "No schedule found for the barber on the chosen date." {
		t.Errorf("error = %q", got)
	}
}

func TestAvailableTimeSlots(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		// 2030-01-07 is a Monday.
		schedules: map[string]domain.ScheduleWindow{
			"Monday": {Start: "09:00", End: "10:00"},
		},
		durations: map[uint]int{1: 30},
	}
	r := newTestRouter(repo)

	w := doGet(t, r, "/api/available-time-slots?service_id=1&barber_id=1&date=2030-01-07")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var slots []string
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatal(err)
	}

	want := []string{"09:00 AM", "09:15 AM", "09:30 AM"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slots[%d] = %q, want %q", i, slots[i], want[i])
		}
	}
}

func TestBlockedDatesMissingBarber(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{})

	w := doGet(t, r, "/api/blocked-dates")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got != "Barber ID is required." {
		t.Errorf("error = %q", got)
	}
}

func TestBlockedDatesEmpty(t *testing.T) {
	r := newTestRouter(&fakeAvailabilityRepo{})

	w := doGet(t, r, "/api/blocked-dates?barber_id=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("body = %s, want []", w.Body.String())
	}
}
