package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/audit"
	"github.com/numberonebarber/booking-api/internal/cache"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/httpresp"
	"github.com/numberonebarber/booking-api/internal/middleware"
	"github.com/numberonebarber/booking-api/internal/models"
	"github.com/numberonebarber/booking-api/internal/validators"
)

type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewBarberHandler(db *gorm.DB, dispatcher *audit.Dispatcher, availCache *cache.AvailabilityCache) *BarberHandler {
	return &BarberHandler{db: db, audit: dispatcher, cache: availCache}
}

// --------- Requests ---------

type BarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`

	AgreedMargin          *int   `json:"agreed_margin"`
	SocialInsuranceNumber string `json:"social_insurance_number"`

	EmergencyContactName         string `json:"emergency_contact_name"`
	EmergencyContactPhone        string `json:"emergency_contact_phone"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`

	Active *bool `json:"active"`
}

type QualificationsRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

func (r *BarberRequest) validate() (code, message string, ok bool) {
	if !validators.IsPhoneValid(r.Phone) {
		return "invalid_phone", "Enter a valid phone number. Include the country code if necessary.", false
	}
	if r.SocialInsuranceNumber != "" && !validators.IsSINValid(r.SocialInsuranceNumber) {
		return "invalid_sin", "Social insurance number must be 9 digits.", false
	}
	if r.EmergencyContactPhone != "" && !validators.IsPhoneValid(r.EmergencyContactPhone) {
		return "invalid_emergency_phone", "Enter a valid emergency contact phone number.", false
	}
	if r.AgreedMargin != nil {
		if err := validators.ValidateMargin(*r.AgreedMargin); err != nil {
			return "invalid_margin", err.Error(), false
		}
	}
	return "", "", true
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Failed to list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barberID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber ID is invalid.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var qualifications []models.BarberQualification
	if err := h.db.Where("barber_id = ?", barberID).Find(&qualifications).Error; err != nil {
		httperr.Internal(c, "failed_to_get_barber", "Failed to get the barber.")
		return
	}

	serviceIDs := make([]uint, 0, len(qualifications))
	for _, q := range qualifications {
		serviceIDs = append(serviceIDs, q.ServiceID)
	}

	c.JSON(http.StatusOK, gin.H{
		"barber":      barber,
		"service_ids": serviceIDs,
	})
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if code, msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, code, msg)
		return
	}

	barber := models.Barber{
		Name:                         req.Name,
		Email:                        req.Email,
		Phone:                        req.Phone,
		SocialInsuranceNumber:        req.SocialInsuranceNumber,
		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactPhone:        req.EmergencyContactPhone,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		Active:                       true,
	}
	if req.AgreedMargin != nil {
		barber.AgreedMargin = *req.AgreedMargin
	} else {
		barber.AgreedMargin = 60
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Failed to create the barber.")
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	barberID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber ID is invalid.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if code, msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, code, msg)
		return
	}

	barber.Name = req.Name
	barber.Email = req.Email
	barber.Phone = req.Phone
	barber.SocialInsuranceNumber = req.SocialInsuranceNumber
	barber.EmergencyContactName = req.EmergencyContactName
	barber.EmergencyContactPhone = req.EmergencyContactPhone
	barber.EmergencyContactRelationship = req.EmergencyContactRelationship
	if req.AgreedMargin != nil {
		barber.AgreedMargin = *req.AgreedMargin
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Failed to update the barber.")
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	h.cache.InvalidateBarber(c.Request.Context(), barber.ID)

	c.JSON(http.StatusOK, barber)
}

// UpdateQualifications replaces the barber's full set of qualified
// services.
func (h *BarberHandler) UpdateQualifications(c *gin.Context) {
	barberID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barber ID is invalid.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var req QualificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if len(req.ServiceIDs) > 0 {
		var count int64
		if err := h.db.Model(&models.Service{}).
			Where("id IN ?", req.ServiceIDs).
			Count(&count).Error; err != nil {

			httperr.Internal(c, "failed_to_update_qualifications", "Failed to update qualifications.")
			return
		}
		if int(count) != len(req.ServiceIDs) {
			httperr.BadRequest(c, "service_not_found", "One of the services does not exist.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.BarberQualification{}).Error; err != nil {
			return err
		}

		var toCreate []models.BarberQualification
		for _, serviceID := range req.ServiceIDs {
			toCreate = append(toCreate, models.BarberQualification{
				BarberID:  barberID,
				ServiceID: serviceID,
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
		httperr.Internal(c, "failed_to_update_qualifications", "Failed to update qualifications.")
		return
	}

	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "qualifications_updated",
		Entity:   "barber",
		EntityID: &barberID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
