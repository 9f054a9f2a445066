package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Reject(ap *models.Appointment, reason string) error {
	if err := CanReject(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	ap.RejectionReason = strings.TrimSpace(reason)
	return nil
}

// Suggestion is a new date/time proposed for a pending appointment.
// The original slot stays on the row; the suggestion lives beside it.
type Suggestion struct {
	Date time.Time
	Slot schedule.Interval
}

func Reschedule(ap *models.Appointment, s Suggestion) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	date := s.Date
	ap.Status = string(StatusRescheduled)
	ap.SuggestedDate = &date
	ap.SuggestedTime = schedule.MinutesToTime(s.Slot.Start)
	ap.SuggestedEndTime = schedule.MinutesToTime(s.Slot.End)
	return nil
}

func CancelByClient(ap *models.Appointment) error {
	if err := CanCancelByClient(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	return nil
}

// BelongsToClient compara email sem diferenciar maiúsculas e telefone
// apenas pelos dígitos.
func BelongsToClient(ap *models.Appointment, email, phone string) bool {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(phone) == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(ap.ClientEmail), strings.TrimSpace(email)) &&
		digits(ap.ClientPhone) == digits(phone)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
