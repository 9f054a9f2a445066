package appointment

import (
	"context"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type RejectAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewRejectAppointment(repo domain.Repository, audit Auditor) *RejectAppointment {
	return &RejectAppointment{repo: repo, audit: audit}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForBusiness(ctx, appointmentID, businessID)
		if err != nil {
			return notFoundAs(err, "appointment_not_found")
		}

		if err := domain.Reject(ap, reason); err != nil {
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
		Action:     "appointment_rejected",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"reason": ap.RejectionReason},
	})

	return ap, nil
}
