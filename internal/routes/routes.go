package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/numberonebarber/booking-api/internal/audit"
	"github.com/numberonebarber/booking-api/internal/cache"
	"github.com/numberonebarber/booking-api/internal/config"
	"github.com/numberonebarber/booking-api/internal/handlers"
	infraRepo "github.com/numberonebarber/booking-api/internal/infra/repository"
	"github.com/numberonebarber/booking-api/internal/media"
	"github.com/numberonebarber/booking-api/internal/middleware"
	ucAvailability "github.com/numberonebarber/booking-api/internal/usecase/availability"
	ucBooking "github.com/numberonebarber/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	availCache := cache.New(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second, log)

	uploader := media.NewUploader(cfg)
	if uploader == nil {
		log.Info("object storage not configured, image uploads disabled")
	}

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	timeSlotsUC := ucAvailability.NewGetTimeSlots(
		availabilityRepo,
		cfg.SlotStepMinutes,
	)

	availableDatesUC := ucAvailability.NewGetAvailableDates(
		availabilityRepo,
		cfg.BookingHorizonDays,
	)

	blockedDatesUC := ucAvailability.NewGetBlockedDates(
		availabilityRepo,
		cfg.SlotStepMinutes,
	)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	updateBookingStatusUC := ucBooking.NewUpdateBookingStatus(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		timeSlotsUC,
		availableDatesUC,
		blockedDatesUC,
		availCache,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		updateBookingStatusUC,
		availCache,
	)

	barberHandler := handlers.NewBarberHandler(db, auditDispatcher, availCache)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	scheduleHandler := handlers.NewScheduleHandler(db, auditDispatcher, availCache)
	timeOffHandler := handlers.NewTimeOffHandler(db, auditDispatcher, availCache)
	reportHandler := handlers.NewReportHandler(db)
	mediaHandler := handlers.NewMediaHandler(db, uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/qualified-barbers", publicHandler.QualifiedBarbers)
		api.GET("/available-dates", publicHandler.AvailableDates)
		api.GET("/available-time-slots", publicHandler.AvailableTimeSlots)
		api.GET("/blocked-dates", publicHandler.BlockedDates)

		api.POST("/bookings", bookingHandler.Create)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF API
		// ------------------------------
		staff := api.Group("/staff")
		staff.Use(middleware.AuthMiddleware(cfg))
		{
			staff.GET("/me", meHandler.GetMe)

			staff.GET("/barbers", barberHandler.List)
			staff.POST("/barbers", barberHandler.Create)
			staff.GET("/barbers/:id", barberHandler.Get)
			staff.PATCH("/barbers/:id", barberHandler.Update)
			staff.PUT("/barbers/:id/qualifications", barberHandler.UpdateQualifications)
			staff.POST("/barbers/:id/image", mediaHandler.UploadBarberImage)

			staff.POST("/services", serviceHandler.Create)
			staff.PATCH("/services/:id", serviceHandler.Update)
			staff.DELETE("/services/:id", serviceHandler.Delete)
			staff.POST("/services/:id/image", mediaHandler.UploadServiceImage)

			staff.GET("/barbers/:id/schedule", scheduleHandler.Get)
			staff.PUT("/barbers/:id/schedule", scheduleHandler.Update)

			staff.POST("/time-off", timeOffHandler.Create)
			staff.GET("/time-off", timeOffHandler.List)
			staff.PATCH("/time-off/:id/approve", timeOffHandler.Approve)

			staff.GET("/bookings", bookingHandler.ListByDate)
			staff.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			staff.GET("/reports/earnings", reportHandler.Earnings)

			staff.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
