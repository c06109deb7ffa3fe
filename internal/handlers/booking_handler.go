package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/cache"
	domainBooking "github.com/numberonebarber/booking-api/internal/domain/booking"
	"github.com/numberonebarber/booking-api/internal/dto"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/httpresp"
	"github.com/numberonebarber/booking-api/internal/middleware"
	"github.com/numberonebarber/booking-api/internal/models"
	"github.com/numberonebarber/booking-api/internal/timezone"
	ucBooking "github.com/numberonebarber/booking-api/internal/usecase/booking"
	"github.com/numberonebarber/booking-api/internal/validators"
)

type BookingHandler struct {
	db       *gorm.DB
	createUC *ucBooking.CreateBooking
	statusUC *ucBooking.UpdateBookingStatus
	cache    *cache.AvailabilityCache
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	statusUC *ucBooking.UpdateBookingStatus,
	availCache *cache.AvailabilityCache,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		createUC: createUC,
		statusUC: statusUC,
		cache:    availCache,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	if !validators.IsPhoneValid(req.ClientPhone) {
		httperr.BadRequest(c, "invalid_phone", "Enter a valid phone number. Include the country code if necessary.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarberID:    req.BarberID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceIDs:  req.ServiceIDs,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		mapCreateBookingErrors(c, err)
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), b.BarberID)

	c.JSON(http.StatusCreated, b)
}

func mapCreateBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "no_services_selected"):
		httperr.BadRequest(c, "no_services_selected", "Select at least one service.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Date or time is invalid.")
	case httperr.IsBusiness(err, "in_the_past"):
		httperr.BadRequest(c, "in_the_past", "Cannot book a time in the past.")
	case httperr.IsBusiness(err, "barber_not_found"):
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "One of the selected services does not exist.")
	case httperr.IsBusiness(err, "barber_not_qualified"):
		httperr.BadRequest(c, "barber_not_qualified", "The barber is not qualified for one of the selected services.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "The appointment does not fit the barber's working hours.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.BadRequest(c, "time_conflict", "The time conflicts with an existing booking.")
	case httperr.IsBusiness(err, "time_off_conflict"):
		httperr.BadRequest(c, "time_off_conflict", "The barber is off during the requested time.")
	default:
		httperr.Internal(c, "booking_failed", "Failed to create booking.")
	}
}

func (h *BookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.DefaultQuery("date", timezone.Now().Format("2006-01-02"))

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be formatted as YYYY-MM-DD.")
		return
	}

	q := h.db.
		Preload("SelectedServices.Service").
		Where("date = ?", date.Format("2006-01-02"))

	if barberID, ok := parseID(c.Query("barber_id")); ok {
		q = q.Where("barber_id = ?", barberID)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		services := make([]string, 0, len(b.SelectedServices))
		totalMin := 0
		for _, s := range b.SelectedServices {
			services = append(services, s.Service.Name)
			totalMin += s.Service.DurationMin
		}

		out = append(out, dto.BookingListDTO{
			ID:          b.ID,
			Reference:   b.Reference,
			Date:        b.Date.Format("2006-01-02"),
			StartTime:   b.StartTime,
			Status:      b.Status,
			ClientName:  b.ClientName,
			Services:    services,
			DurationMin: totalMin,
		})
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Booking ID is invalid.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	b, err := h.statusUC.Execute(
		c.Request.Context(),
		bookingID,
		&userID,
		domainBooking.Status(req.Status),
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "The booking cannot change to that status.")
		default:
			httperr.Internal(c, "status_update_failed", "Failed to update booking status.")
		}
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), b.BarberID)

	c.JSON(http.StatusOK, b)
}
