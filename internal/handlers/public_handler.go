package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/cache"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/models"
	"github.com/numberonebarber/booking-api/internal/timezone"
	ucAvailability "github.com/numberonebarber/booking-api/internal/usecase/availability"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db      *gorm.DB
	slots   *ucAvailability.GetTimeSlots
	dates   *ucAvailability.GetAvailableDates
	blocked *ucAvailability.GetBlockedDates
	cache   *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	slots *ucAvailability.GetTimeSlots,
	dates *ucAvailability.GetAvailableDates,
	blocked *ucAvailability.GetBlockedDates,
	availCache *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:      db,
		slots:   slots,
		dates:   dates,
		blocked: blocked,
		cache:   availCache,
	}
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

////////////////////////////////////////////////////////
// QUALIFIED BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) QualifiedBarbers(c *gin.Context) {
	serviceID, ok := parseID(c.Query("service_id"))
	if !ok {
		httperr.BadRequest(c, "missing_service_id", "Service ID is required.")
		return
	}

	var barbers []models.Barber
	err := h.db.
		Joins("JOIN barber_qualifications ON barber_qualifications.barber_id = barbers.id").
		Where("barber_qualifications.service_id = ? AND barbers.active = true", serviceID).
		Order("barbers.id ASC").
		Find(&barbers).Error

	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Failed to list qualified barbers.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

////////////////////////////////////////////////////////
// AVAILABLE DATES
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableDates(c *gin.Context) {
	serviceID, okService := parseID(c.Query("service_id"))
	barberID, okBarber := parseID(c.Query("barber_id"))
	if !okService || !okBarber {
		httperr.BadRequest(c, "missing_params", "Service ID and Barber ID are required.")
		return
	}

	ctx := c.Request.Context()

	if dates, hit := h.cache.GetDates(ctx, barberID, serviceID); hit {
		c.JSON(http.StatusOK, dates)
		return
	}

	dates, err := h.dates.Execute(ctx, serviceID, barberID)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "availability_failed", "Failed to compute available dates.")
		return
	}

	h.cache.SetDates(ctx, barberID, serviceID, dates)
	c.JSON(http.StatusOK, dates)
}

////////////////////////////////////////////////////////
// AVAILABLE TIME SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableTimeSlots(c *gin.Context) {
	serviceID, okService := parseID(c.Query("service_id"))
	barberID, okBarber := parseID(c.Query("barber_id"))
	dateStr := c.Query("date")
	if !okService || !okBarber || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Service ID, Barber ID, and Date are required.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be formatted as YYYY-MM-DD.")
		return
	}

	ctx := c.Request.Context()

	if slots, hit := h.cache.GetSlots(ctx, barberID, serviceID, dateStr); hit {
		c.JSON(http.StatusOK, slots)
		return
	}

	slots, err := h.slots.Execute(ctx, barberID, serviceID, date)
	if err != nil {
		if httperr.IsBusiness(err, "schedule_not_found") {
			httperr.NotFound(c, "schedule_not_found", "No schedule found for the barber on the chosen date.")
			return
		}
		httperr.Internal(c, "availability_failed", "Failed to compute time slots.")
		return
	}

	h.cache.SetSlots(ctx, barberID, serviceID, dateStr, slots)
	c.JSON(http.StatusOK, slots)
}

////////////////////////////////////////////////////////
// BLOCKED DATES
////////////////////////////////////////////////////////

func (h *PublicHandler) BlockedDates(c *gin.Context) {
	barberID, ok := parseID(c.Query("barber_id"))
	if !ok {
		httperr.BadRequest(c, "missing_barber_id", "Barber ID is required.")
		return
	}

	dates, err := h.blocked.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Failed to compute blocked dates.")
		return
	}

	c.JSON(http.StatusOK, dates)
}
