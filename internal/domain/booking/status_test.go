package booking

import (
	"testing"

	"github.com/numberonebarber/booking-api/internal/httperr"
)

func TestIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		if !IsValid(s) {
			t.Errorf("%q should be valid", s)
		}
	}

	for _, s := range []Status{"", "archived", "Pending", "noshow"} {
		if IsValid(s) {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
	}
	for _, tc := range allowed {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Errorf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusCompleted, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusNoShow, StatusConfirmed},
		{StatusConfirmed, StatusPending},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("%s -> %s should be invalid_state, got %v", tc.from, tc.to, err)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus() != StatusPending {
		t.Errorf("initial status = %q, want pending", InitialStatus())
	}
}
