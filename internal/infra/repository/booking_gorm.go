package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/numberonebarber/booking-api/internal/domain/booking"
	"github.com/numberonebarber/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) QualifiedServiceIDs(
	ctx context.Context,
	barberID uint,
) (map[uint]bool, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.BarberQualification{}).
		Where("barber_id = ?", barberID).
		Pluck("service_id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *BookingGormRepository) ScheduleFor(
	ctx context.Context,
	barberID uint,
	weekday string,
) (*models.BarberSchedule, error) {

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

	return &sched, nil
}

// --------------------------------------------------
// Conflict checks
// --------------------------------------------------

func (r *BookingGormRepository) BookingsOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.ExistingBooking, error) {

	var recs []domain.ExistingBooking
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.start_time AS start_time, COALESCE(SUM(services.duration_min), 0) AS total_duration_min").
		Joins("LEFT JOIN selected_services ON selected_services.booking_id = bookings.id").
		Joins("LEFT JOIN services ON services.id = selected_services.service_id").
		Where("bookings.barber_id = ? AND bookings.date = ? AND bookings.status <> ?",
			barberID, date.Format(dateColumnFormat), string(domain.StatusCancelled)).
		Group("bookings.id, bookings.start_time").
		Order("bookings.start_time ASC").
		Scan(&recs).Error

	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *BookingGormRepository) ApprovedTimeOffOn(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.TimeOffRequest, error) {

	var rows []models.TimeOffRequest
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ? AND approved = true", barberID, date.Format(dateColumnFormat)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	serviceIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		selected := make([]models.SelectedService, 0, len(serviceIDs))
		for _, id := range serviceIDs {
			selected = append(selected, models.SelectedService{
				BookingID: b.ID,
				ServiceID: id,
			})
		}

		return tx.Create(&selected).Error
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("SelectedServices.Service").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Update("status", b.Status).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
