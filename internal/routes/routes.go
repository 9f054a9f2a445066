package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/handlers"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
	ucHours "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/businesshours"
	ucSubscription "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

// Deps are the singletons built by main (or by tests with in-memory
// fakes). Metrics and RateLimiter are optional.
type Deps struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  timezone.Clock

	Appointments domain.Repository
	Hours        ucHours.Repository
	AuditLogs    handlers.AuditLogReader
	Audit        ucAppointment.Auditor

	Metrics     *metrics.Metrics
	RateLimiter middleware.WindowCounter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	var recorder ucAppointment.BookingRecorder
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
		recorder = d.Metrics
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🧠 USE CASES — SUBSCRIPTIONS
	// ======================================================
	plans := cfg.Catalog()
	gate := ucSubscription.NewGate(plans, d.Clock, d.Logger)
	subscriptions := d.Appointments.Subscriptions()

	createSubscriptionUC := ucSubscription.NewCreateSubscription(
		subscriptions,
		plans,
		cfg.SubscriptionDurationDays,
		d.Clock,
		d.Audit,
		d.Logger,
	)
	mySubscriptionUC := ucSubscription.NewGetMySubscription(subscriptions, gate, plans, d.Clock)
	listPlansUC := ucSubscription.NewListPlans(plans)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	repo := d.Appointments

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		repo,
		gate,
		validators.NewContactValidator(cfg.ValidateEmailDomain),
		d.Clock,
		d.Audit,
		recorder,
		d.Logger,
	)

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUsecases{
		ByDate:     ucAppointment.NewListAppointmentsByDate(repo),
		ByMonth:    ucAppointment.NewListAppointmentsByMonth(repo),
		Search:     ucAppointment.NewSearchAppointments(repo),
		Confirm:    ucAppointment.NewConfirmAppointment(repo, d.Audit),
		Reject:     ucAppointment.NewRejectAppointment(repo, d.Audit),
		Reschedule: ucAppointment.NewRescheduleAppointment(repo, d.Clock, d.Audit),
		Calendar:   ucAppointment.NewExportCalendar(repo, d.Clock),
		Dashboard:  ucAppointment.NewGetDashboardStats(repo, d.Clock),
	}, d.Logger)

	publicHandler := handlers.NewPublicHandler(
		ucAppointment.NewGetAvailability(repo, d.Clock, cfg.SlotGranularity),
		createAppointmentUC,
		ucAppointment.NewListClientAppointments(repo),
		ucAppointment.NewCancelAppointment(repo, d.Audit),
		ucAppointment.NewRequestReschedule(repo, d.Clock, d.Audit),
		d.Logger,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	hoursHandler := handlers.NewBusinessHoursHandler(
		ucHours.NewGetBusinessHours(d.Hours, d.Logger),
		ucHours.NewSaveBusinessHours(d.Hours, d.Audit),
		d.Logger,
	)
	subscriptionHandler := handlers.NewSubscriptionHandler(createSubscriptionUC, mySubscriptionUC, listPlansUC, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Logger)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/plans", subscriptionHandler.Plans)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		if d.RateLimiter != nil {
			publicAPI.Use(middleware.RateLimit(d.RateLimiter, cfg.RateLimitPerMinute, time.Minute, "rl:public", d.Logger))
		}
		{
			publicAPI.GET("/businesses/:id/availability", publicHandler.Availability)
			publicAPI.POST("/businesses/:id/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/businesses/:id/client-appointments", publicHandler.ClientAppointments)

			publicAPI.DELETE("/appointments/:id", publicHandler.Cancel)
			publicAPI.PATCH("/appointments/:id/reschedule-request", publicHandler.RequestReschedule)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/business-hours", hoursHandler.Get)
			secured.PUT("/business-hours", hoursHandler.Update)

			secured.POST("/subscription", subscriptionHandler.Create)
			secured.GET("/subscription", subscriptionHandler.Mine)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/search", appointmentHandler.Search)
			secured.GET("/appointments/calendar.ics", appointmentHandler.Calendar)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/dashboard", appointmentHandler.Dashboard)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
