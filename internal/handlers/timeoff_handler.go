package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/audit"
	"github.com/numberonebarber/booking-api/internal/cache"
	availability "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/httpresp"
	"github.com/numberonebarber/booking-api/internal/middleware"
	"github.com/numberonebarber/booking-api/internal/models"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

type TimeOffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewTimeOffHandler(db *gorm.DB, dispatcher *audit.Dispatcher, availCache *cache.AvailabilityCache) *TimeOffHandler {
	return &TimeOffHandler{db: db, audit: dispatcher, cache: availCache}
}

type TimeOffCreateRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	var req TimeOffCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		req.Date,
		timezone.Location(timezone.DefaultTimezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be formatted as YYYY-MM-DD.")
		return
	}

	if !availability.ClockValid(req.StartTime) || !availability.ClockValid(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Times must be formatted as HH:mm.")
		return
	}
	if req.StartTime >= req.EndTime {
		httperr.BadRequest(c, "invalid_window", "Start time must be before end time.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, req.BarberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	timeOff := models.TimeOffRequest{
		BarberID:  req.BarberID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&timeOff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_off", "Failed to create the time off request.")
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "time_off_requested",
		Entity:   "time_off_request",
		EntityID: &timeOff.ID,
	})

	c.JSON(http.StatusCreated, timeOff)
}

func (h *TimeOffHandler) List(c *gin.Context) {
	q := h.db.Model(&models.TimeOffRequest{})

	if barberID, ok := parseID(c.Query("barber_id")); ok {
		q = q.Where("barber_id = ?", barberID)
	}

	switch c.Query("approved") {
	case "true":
		q = q.Where("approved = true")
	case "false":
		q = q.Where("approved = false")
	}

	var requests []models.TimeOffRequest
	if err := q.Order("date ASC, start_time ASC").Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_off", "Failed to list time off requests.")
		return
	}

	httpresp.List(c, requests)
}

// Approve flips the request to approved, which makes it start blocking
// availability.
func (h *TimeOffHandler) Approve(c *gin.Context) {
	requestID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_request_id", "Time off request ID is invalid.")
		return
	}

	var timeOff models.TimeOffRequest
	if err := h.db.First(&timeOff, requestID).Error; err != nil {
		httperr.NotFound(c, "time_off_not_found", "Time off request not found.")
		return
	}

	if !timeOff.Approved {
		timeOff.Approved = true
		if err := h.db.Save(&timeOff).Error; err != nil {
			httperr.Internal(c, "failed_to_approve_time_off", "Failed to approve the time off request.")
			return
		}
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "time_off_approved",
		Entity:   "time_off_request",
		EntityID: &timeOff.ID,
	})

	h.cache.InvalidateBarber(c.Request.Context(), timeOff.BarberID)

	c.JSON(http.StatusOK, timeOff)
}
