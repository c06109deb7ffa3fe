package booking

import (
	"context"
	"time"

	"github.com/numberonebarber/booking-api/internal/models"
)

// ExistingBooking is a same-day booking with its effective duration,
// used for the write-boundary conflict check.
type ExistingBooking struct {
	StartTime        string
	TotalDurationMin int
}

type Repository interface {
	// -------- Lookups --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	QualifiedServiceIDs(
		ctx context.Context,
		barberID uint,
	) (map[uint]bool, error)

	ScheduleFor(
		ctx context.Context,
		barberID uint,
		weekday string,
	) (*models.BarberSchedule, error)

	// -------- Conflict checks --------
	BookingsOn(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]ExistingBooking, error)

	ApprovedTimeOffOn(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.TimeOffRequest, error)

	// -------- Writes --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		serviceIDs []uint,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
