package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/dto"
	"github.com/numberonebarber/booking-api/internal/httperr"
	"github.com/numberonebarber/booking-api/internal/timezone"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type earningsRow struct {
	BarberID   uint
	BarberName string
	Margin     int
	Gross      float64
	Bookings   int
}

// Earnings aggregates confirmed and completed bookings per barber over
// a date range and splits each barber's gross by their agreed margin.
func (h *ReportHandler) Earnings(c *gin.Context) {
	loc := timezone.Location(timezone.DefaultTimezone)
	today := timezone.Now().Format("2006-01-02")

	startStr := c.DefaultQuery("start_date", today)
	endStr := c.DefaultQuery("end_date", today)

	start, err := time.ParseInLocation("2006-01-02", startStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Start date must be formatted as YYYY-MM-DD.")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "End date must be formatted as YYYY-MM-DD.")
		return
	}
	if end.Before(start) {
		httperr.BadRequest(c, "invalid_range", "End date must not be before start date.")
		return
	}

	var rows []earningsRow
	err = h.db.
		Table("bookings").
		Select(`barbers.id AS barber_id,
			barbers.name AS barber_name,
			barbers.agreed_margin AS margin,
			COALESCE(SUM(services.price), 0) AS gross,
			COUNT(DISTINCT bookings.id) AS bookings`).
		Joins("JOIN barbers ON barbers.id = bookings.barber_id").
		Joins("LEFT JOIN selected_services ON selected_services.booking_id = bookings.id").
		Joins("LEFT JOIN services ON services.id = selected_services.service_id").
		Where("bookings.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Where("bookings.status IN ?", []string{"confirmed", "completed"}).
		Group("barbers.id, barbers.name, barbers.agreed_margin").
		Order("barbers.id ASC").
		Scan(&rows).Error

	if err != nil {
		httperr.Internal(c, "report_failed", "Failed to build the earnings report.")
		return
	}

	report := dto.EarningsReportDTO{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Barbers:   make([]dto.BarberEarningsDTO, 0, len(rows)),
	}

	for _, r := range rows {
		barberCut := r.Gross * float64(r.Margin) / 100
		shopCut := r.Gross - barberCut

		report.EarningsTotal += r.Gross
		report.EarningsAfterSplit += shopCut

		report.Barbers = append(report.Barbers, dto.BarberEarningsDTO{
			BarberID:   r.BarberID,
			BarberName: r.BarberName,
			Margin:     r.Margin,
			Gross:      r.Gross,
			BarberCut:  barberCut,
			ShopCut:    shopCut,
			Bookings:   r.Bookings,
		})
	}

	c.JSON(http.StatusOK, report)
}
