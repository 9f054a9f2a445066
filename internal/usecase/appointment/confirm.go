package appointment

import (
	"context"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewConfirmAppointment(repo domain.Repository, audit Auditor) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, audit: audit}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForBusiness(ctx, appointmentID, businessID)
		if err != nil {
			return notFoundAs(err, "appointment_not_found")
		}

		if err := domain.Confirm(ap); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Actor:      audit.ActorBusiness,
		Action:     "appointment_confirmed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
