package dto

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// AppointmentDTO is the wire shape of an appointment: calendar dates as
// YYYY-MM-DD, times as HH:MM in the business wall clock.
type AppointmentDTO struct {
	ID         uint `json:"id"`
	BusinessID uint `json:"business_id"`
	ServiceID  uint `json:"service_id"`

	ServiceName string  `json:"service_name,omitempty"`
	Price       float64 `json:"price,omitempty"`

	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`

	Date      string `json:"appointment_date"`
	StartTime string `json:"appointment_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`

	Observations    string `json:"observations,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	SuggestedDate    string `json:"suggested_date,omitempty"`
	SuggestedTime    string `json:"suggested_time,omitempty"`
	SuggestedEndTime string `json:"suggested_end_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:               ap.ID,
		BusinessID:       ap.BusinessID,
		ServiceID:        ap.ServiceID,
		ServiceName:      ap.Service.Name,
		Price:            ap.Service.Price,
		ClientName:       ap.ClientName,
		ClientEmail:      ap.ClientEmail,
		ClientPhone:      ap.ClientPhone,
		Date:             schedule.FormatDate(ap.AppointmentDate),
		StartTime:        ap.AppointmentTime,
		EndTime:          ap.EndTime,
		Status:           ap.Status,
		Observations:     ap.Observations,
		RejectionReason:  ap.RejectionReason,
		SuggestedTime:    ap.SuggestedTime,
		SuggestedEndTime: ap.SuggestedEndTime,
		CreatedAt:        ap.CreatedAt,
	}
	if ap.SuggestedDate != nil {
		out.SuggestedDate = schedule.FormatDate(*ap.SuggestedDate)
	}
	return out
}

func FromAppointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
