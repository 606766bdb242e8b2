package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// Deps carries the process wide singletons built in main.
type Deps struct {
	Log         zerolog.Logger
	Audit       *audit.Dispatcher
	AuditLogger *audit.Logger
	Limiter     ratelimit.Limiter
	Avatar      media.Store
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.Timezone)

	reservationRepo := infraRepo.NewReservationGormRepository(db)
	statsRepo := infraRepo.NewStatsGormRepository(db)

	// ======================================================
	// 🧠 USE CASES — RESERVAS
	// ======================================================
	getAvailabilityUC := ucBooking.NewGetAvailability(reservationRepo)

	commitReservationUC := ucBooking.NewCommitReservation(
		reservationRepo,
		deps.Audit,
		deps.Log,
		loc,
	)

	confirmReservationUC := ucBooking.NewConfirmReservation(
		reservationRepo,
		deps.Audit,
		loc,
	)

	cancelReservationUC := ucBooking.NewCancelReservation(
		reservationRepo,
		deps.Audit,
		loc,
	)

	listByDateUC := ucBooking.NewListReservationsByDate(reservationRepo)
	listByPeriodUC := ucBooking.NewListReservationsForPeriod(reservationRepo)
	listRecentUC := ucBooking.NewListRecentReservations(reservationRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		db,
		deps.Log,
		loc,
		getAvailabilityUC,
		commitReservationUC,
	)

	reservationHandler := handlers.NewReservationHandler(
		deps.Log,
		listByDateUC,
		listByPeriodUC,
		confirmReservationUC,
		cancelReservationUC,
		listRecentUC,
	)

	authHandler := handlers.NewAuthHandler(cfg, deps.Audit)
	serviceHandler := handlers.NewServiceHandler(db, deps.Audit, deps.Log)
	stylistHandler := handlers.NewStylistHandler(db, deps.Audit, deps.Avatar, deps.Log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, deps.Audit, deps.Log)
	clientHandler := handlers.NewClientHandler(db, deps.Log)
	statsHandler := handlers.NewStatsHandler(statsRepo, deps.Log, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogger, deps.Log)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/servicios", publicHandler.ListServices)
		api.GET("/peluqueros", publicHandler.ListStylists)
		api.GET("/horarios", publicHandler.Availability)
		api.POST("/reservas",
			middleware.RateLimit(deps.Limiter, deps.Log),
			publicHandler.CreateReservation,
		)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/admin/login", authHandler.Login)

		// ------------------------------
		// 🔐 API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/reservas", reservationHandler.ListByDate)
			admin.GET("/reservas/recientes", reservationHandler.Recent)
			admin.GET("/reservas/export", reservationHandler.Export)
			admin.PATCH("/reservas/:id/confirmar", reservationHandler.Confirm)
			admin.PATCH("/reservas/:id/cancelar", reservationHandler.Cancel)

			admin.GET("/servicios", serviceHandler.List)
			admin.POST("/servicios", serviceHandler.Create)
			admin.PATCH("/servicios/:id", serviceHandler.Update)
			admin.DELETE("/servicios/:id", serviceHandler.Delete)

			admin.GET("/peluqueros", stylistHandler.List)
			admin.POST("/peluqueros", stylistHandler.Create)
			admin.PATCH("/peluqueros/:id", stylistHandler.Update)
			admin.DELETE("/peluqueros/:id", stylistHandler.Delete)
			admin.PUT("/peluqueros/:id/servicios", stylistHandler.SetServices)
			admin.POST("/peluqueros/:id/avatar", stylistHandler.UploadAvatar)

			admin.GET("/peluqueros/:id/horarios", workingHoursHandler.Get)
			admin.PUT("/peluqueros/:id/horarios", workingHoursHandler.Update)

			admin.GET("/clientes", clientHandler.List)
			admin.POST("/clientes", clientHandler.Create)
			admin.PATCH("/clientes/:id", clientHandler.Update)

			admin.GET("/estadisticas", statsHandler.General)
			admin.GET("/ingresos-diarios", statsHandler.DailyRevenue)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
