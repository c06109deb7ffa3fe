package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/audit"
	"github.com/numberonebarber/booking-api/internal/cache"
	availability "github.com/numberonebarber/booking-api/internal/domain/availability"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/middleware"
	"github.com/numberonebarber/booking-api/internal/models"
)

type ScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewScheduleHandler(db *gorm.DB, dispatcher *audit.Dispatcher, availCache *cache.AvailabilityCache) *ScheduleHandler {
	return &ScheduleHandler{db: db, audit: dispatcher, cache: availCache}
}

type ScheduleDayConfig struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	barberID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber ID is invalid.")
		return
	}

	var schedules []models.BarberSchedule
	if err := h.db.
		Where("barber_id = ?", barberID).
		Find(&schedules).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Failed to get the schedule.")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// Update replaces the barber's whole weekly schedule. Days not present
// in the payload become days off.
func (h *ScheduleHandler) Update(c *gin.Context) {
	barberID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber ID is invalid.")
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	seen := make(map[string]bool, len(req.Days))
	for _, d := range req.Days {
		if !models.IsWeekday(d.DayOfWeek) {
			httperr.BadRequest(c, "invalid_weekday", "Day of week must be a weekday name, e.g. Monday.")
			return
		}
		if seen[d.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday can appear only once.")
			return
		}
		seen[d.DayOfWeek] = true

		if !availability.ClockValid(d.StartTime) || !availability.ClockValid(d.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Times must be formatted as HH:mm.")
			return
		}
		if d.StartTime >= d.EndTime {
			httperr.BadRequest(c, "invalid_window", "Start time must be before end time.")
			return
		}
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.BarberSchedule{}).Error; err != nil {
			return err
		}

		var toCreate []models.BarberSchedule
		for _, d := range req.Days {
			toCreate = append(toCreate, models.BarberSchedule{
				BarberID:  barberID,
				DayOfWeek: d.DayOfWeek,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Failed to save the schedule.")
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "schedule_updated",
		Entity:   "barber",
		EntityID: &barberID,
	})

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
