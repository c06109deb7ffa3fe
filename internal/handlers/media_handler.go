package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/media"
	"github.com/numberonebarber/booking-api/internal/models"
)

// Uploaded files above this size are rejected before decoding.
const maxUploadBytes = 10 << 20

type MediaHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewMediaHandler(db *gorm.DB, uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{db: db, uploader: uploader}
}

func (h *MediaHandler) UploadBarberImage(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "Image uploads are not configured.")
		return
	}

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

	url, ok := h.storeImage(c, fmt.Sprintf("profile_images/%d.webp", barberID))
	if !ok {
		return
	}

	if err := h.db.Model(&barber).Update("profile_image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_image_url", "Failed to save the image URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *MediaHandler) UploadServiceImage(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "Image uploads are not configured.")
		return
	}

	serviceID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Service ID is invalid.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	url, ok := h.storeImage(c, fmt.Sprintf("service_images/%d.webp", serviceID))
	if !ok {
		return
	}

	if err := h.db.Model(&service).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_image_url", "Failed to save the image URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// storeImage pulls the "image" part out of the multipart form and hands
// it to the uploader. On failure it writes the response itself.
func (h *MediaHandler) storeImage(c *gin.Context, key string) (string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return "", false
	}

	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "The image is too large.")
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Failed to read the uploaded image.")
		return "", false
	}
	defer f.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), key, f)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file could not be processed as an image.")
		return "", false
	}

	return url, true
}
