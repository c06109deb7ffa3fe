package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	domain "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/models"
)

const dateColumnFormat = "2006-01-02"

// AvailabilityGormRepository is the read-only persistence view behind
// the availability engine.
type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------

func (r *AvailabilityGormRepository) ScheduleFor(
	ctx context.Context,
	barberID uint,
	weekday string,
) (*domain.ScheduleWindow, error) {

	var sched models.BarberSchedule
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, weekday).
		First(&sched).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleWindow{
		Start: sched.StartTime,
		End:   sched.EndTime,
	}, nil
}

func (r *AvailabilityGormRepository) WeekdaySchedules(
	ctx context.Context,
	barberID uint,
) ([]domain.ScheduleEntry, error) {

	var scheds []models.BarberSchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Find(&scheds).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.ScheduleEntry, 0, len(scheds))
	for _, s := range scheds {
		entries = append(entries, domain.ScheduleEntry{
			DayOfWeek: s.DayOfWeek,
			Start:     s.StartTime,
			End:       s.EndTime,
		})
	}

	return entries, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AvailabilityGormRepository) ServiceDuration(
	ctx context.Context,
	serviceID uint,
) (int, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).First(&svc, serviceID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return svc.DurationMin, nil
}

// --------------------------------------------------
// Bookings / time off on one date
// --------------------------------------------------

func (r *AvailabilityGormRepository) BookingsOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.BookingRecord, error) {

	var recs []domain.BookingRecord
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.start_time AS start_time, COALESCE(SUM(services.duration_min), 0) AS total_duration_min").
		Joins("LEFT JOIN selected_services ON selected_services.booking_id = bookings.id").
		Joins("LEFT JOIN services ON services.id = selected_services.service_id").
		Where("bookings.barber_id = ? AND bookings.date = ?", barberID, date.Format(dateColumnFormat)).
		Group("bookings.id, bookings.start_time").
		Order("bookings.start_time ASC").
		Scan(&recs).Error

	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *AvailabilityGormRepository) ApprovedTimeOffOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.TimeOffRecord, error) {

	var rows []models.TimeOffRequest
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ? AND approved = true", barberID, date.Format(dateColumnFormat)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	recs := make([]domain.TimeOffRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, domain.TimeOffRecord{
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}

	return recs, nil
}

// --------------------------------------------------
// Date-level checks
// --------------------------------------------------

func (r *AvailabilityGormRepository) HasBookingOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("barber_id = ? AND date = ?", barberID, date.Format(dateColumnFormat)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AvailabilityGormRepository) HasApprovedTimeOffOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TimeOffRequest{}).
		Where("barber_id = ? AND date = ? AND approved = true", barberID, date.Format(dateColumnFormat)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AvailabilityGormRepository) BusyDatesFrom(
	ctx context.Context,
	barberID uint,
	from time.Time,
) ([]time.Time, error) {

	fromStr := from.Format(dateColumnFormat)

	var bookingDates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("barber_id = ? AND date >= ?", barberID, fromStr).
		Distinct().
		Pluck("date", &bookingDates).Error; err != nil {
		return nil, err
	}

	var timeOffDates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.TimeOffRequest{}).
		Where("barber_id = ? AND date >= ? AND approved = true", barberID, fromStr).
		Distinct().
		Pluck("date", &timeOffDates).Error; err != nil {
		return nil, err
	}

	// Re-anchor scanned dates in the caller's location so weekday and
	// wall-clock math downstream stay in the business timezone.
	seen := make(map[string]bool)
	var dates []time.Time
	for _, d := range append(bookingDates, timeOffDates...) {
		key := d.Format(dateColumnFormat)
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, time.Date(
			d.Year(), d.Month(), d.Day(),
			0, 0, 0, 0,
			from.Location(),
		))
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
