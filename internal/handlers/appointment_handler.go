package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	byDate     *appointment.ListAppointmentsByDate
	byMonth    *appointment.ListAppointmentsByMonth
	search     *appointment.SearchAppointments
	confirm    *appointment.ConfirmAppointment
	reject     *appointment.RejectAppointment
	reschedule *appointment.RescheduleAppointment
	calendar   *appointment.ExportCalendar
	dashboard  *appointment.GetDashboardStats
	logger     *slog.Logger
}

type AppointmentUsecases struct {
	ByDate     *appointment.ListAppointmentsByDate
	ByMonth    *appointment.ListAppointmentsByMonth
	Search     *appointment.SearchAppointments
	Confirm    *appointment.ConfirmAppointment
	Reject     *appointment.RejectAppointment
	Reschedule *appointment.RescheduleAppointment
	Calendar   *appointment.ExportCalendar
	Dashboard  *appointment.GetDashboardStats
}

func NewAppointmentHandler(uc AppointmentUsecases, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		byDate:     uc.ByDate,
		byMonth:    uc.ByMonth,
		search:     uc.Search,
		confirm:    uc.Confirm,
		reject:     uc.Reject,
		reschedule: uc.Reschedule,
		calendar:   uc.Calendar,
		dashboard:  uc.Dashboard,
		logger:     logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RejectAppointmentRequest struct {
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	SuggestedDate string `json:"suggested_date" binding:"required"`
	SuggestedTime string `json:"suggested_time" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID := middleware.BusinessID(c)

	if c.Query("date") == "" {
		badRequest(c, "invalid_date")
		return
	}

	apps, err := h.byDate.Execute(c.Request.Context(), businessID, c.Query("date"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	businessID := middleware.BusinessID(c)

	year, month, ok := yearMonth(c)
	if !ok {
		badRequest(c, "invalid_month")
		return
	}

	apps, err := h.byMonth.Execute(c.Request.Context(), businessID, year, month)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": dto.FromAppointments(apps),
	})
}

func (h *AppointmentHandler) Search(c *gin.Context) {
	page, ok1 := intQuery(c, "page", 1)
	limit, ok2 := intQuery(c, "limit", 20)
	if !ok1 || !ok2 {
		badRequest(c, "invalid_request")
		return
	}

	res, err := h.search.Execute(c.Request.Context(), appointment.SearchInput{
		BusinessID: middleware.BusinessID(c),
		Status:     c.Query("status"),
		Date:       c.Query("date"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Page(c, res.Items, res.Total, res.Page, res.Limit)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	// corpo opcional
	var req RejectAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_request")
			return
		}
	}

	ap, err := h.reject.Execute(c.Request.Context(), middleware.BusinessID(c), id, req.Reason)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), appointment.RescheduleInput{
		BusinessID:    middleware.BusinessID(c),
		AppointmentID: id,
		SuggestedDate: req.SuggestedDate,
		SuggestedTime: req.SuggestedTime,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// CALENDAR + DASHBOARD
// ======================================================

func (h *AppointmentHandler) Calendar(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		badRequest(c, "invalid_month")
		return
	}

	ics, err := h.calendar.Execute(c.Request.Context(), middleware.BusinessID(c), year, month)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="agenda-%04d-%02d.ics"`, year, month))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, stats)
}
