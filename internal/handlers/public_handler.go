package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the client side. Clients are anonymous: the
// (email, phone) pair of an appointment identifies its owner.
type PublicHandler struct {
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
	list         *appointment.ListClientAppointments
	cancel       *appointment.CancelAppointment
	reschedule   *appointment.RequestReschedule
	logger       *slog.Logger
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	list *appointment.ListClientAppointments,
	cancel *appointment.CancelAppointment,
	reschedule *appointment.RequestReschedule,
	logger *slog.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
		list:         list,
		cancel:       cancel,
		reschedule:   reschedule,
		logger:       logger,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ServiceID    uint   `json:"service_id" binding:"required"`
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	ClientPhone  string `json:"client_phone"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:MM
	Observations string `json:"observations"`
}

type RescheduleRequestBody struct {
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SuggestedDate string `json:"suggested_date" binding:"required"`
	SuggestedTime string `json:"suggested_time" binding:"required"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	businessID, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		badRequest(c, "invalid_request")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       c.Query("date"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	businessID, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:   businessID,
		ServiceID:    req.ServiceID,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		Date:         req.Date,
		Time:         req.Time,
		Observations: req.Observations,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap))
}

////////////////////////////////////////////////////////
// CLIENT SELF-SERVICE
////////////////////////////////////////////////////////

func (h *PublicHandler) ClientAppointments(c *gin.Context) {
	businessID, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	apps, err := h.list.Execute(c.Request.Context(), businessID, appointment.ClientIdentity{
		Email: c.Query("email"),
		Phone: c.Query("phone"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps))
}

func (h *PublicHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, appointment.ClientIdentity{
		Email: c.Query("email"),
		Phone: c.Query("phone"),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *PublicHandler) RequestReschedule(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		badRequest(c, "invalid_id")
		return
	}

	var req RescheduleRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), appointment.RequestRescheduleInput{
		AppointmentID: id,
		Client:        appointment.ClientIdentity{Email: req.Email, Phone: req.Phone},
		SuggestedDate: req.SuggestedDate,
		SuggestedTime: req.SuggestedTime,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}
