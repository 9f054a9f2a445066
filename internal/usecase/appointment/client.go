package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

// Clientes não têm login: a dupla (email, telefone) do agendamento
// funciona como credencial.

type ClientIdentity struct {
	Email string
	Phone string
}

func (c ClientIdentity) valid() bool {
	return strings.TrimSpace(c.Email) != "" && strings.TrimSpace(c.Phone) != ""
}

// loadOwned loads the appointment inside tx, locking its business first,
// and checks that it belongs to the client.
func loadOwned(
	ctx context.Context,
	tx domain.Repository,
	appointmentID uint,
	who ClientIdentity,
) (*models.Business, *models.Appointment, error) {

	if !who.valid() {
		return nil, nil, httperr.ErrValidation("client_identity_required")
	}

	found, err := tx.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, notFoundAs(err, "appointment_not_found")
	}

	shop, err := tx.LockBusiness(ctx, found.BusinessID)
	if err != nil {
		return nil, nil, notFoundAs(err, "business_not_found")
	}

	ap, err := tx.GetAppointmentForBusiness(ctx, appointmentID, shop.ID)
	if err != nil {
		return nil, nil, notFoundAs(err, "appointment_not_found")
	}

	if !domain.BelongsToClient(ap, who.Email, who.Phone) {
		return nil, nil, httperr.ErrForbidden("not_appointment_owner")
	}

	return shop, ap, nil
}

// ======================================================
// List
// ======================================================

type ListClientAppointments struct {
	repo domain.Repository
}

func NewListClientAppointments(repo domain.Repository) *ListClientAppointments {
	return &ListClientAppointments{repo: repo}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	businessID uint,
	who ClientIdentity,
) ([]models.Appointment, error) {

	if !who.valid() {
		return nil, httperr.ErrValidation("client_identity_required")
	}

	if _, err := uc.repo.GetBusinessByID(ctx, businessID); err != nil {
		return nil, notFoundAs(err, "business_not_found")
	}

	apps, err := uc.repo.ListClientAppointments(ctx, businessID, strings.TrimSpace(who.Email))
	if err != nil {
		return nil, err
	}

	out := make([]models.Appointment, 0, len(apps))
	for i := range apps {
		if domain.BelongsToClient(&apps[i], who.Email, who.Phone) {
			out = append(out, apps[i])
		}
	}
	return out, nil
}

// ======================================================
// Cancel
// ======================================================

type CancelAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewCancelAppointment(repo domain.Repository, audit Auditor) *CancelAppointment {
	return &CancelAppointment{repo: repo, audit: audit}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	who ClientIdentity,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		_, owned, err := loadOwned(ctx, tx, appointmentID, who)
		if err != nil {
			return err
		}

		if err := domain.CancelByClient(owned); err != nil {
			return err
		}
		ap = owned
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		Actor:      audit.ActorClient,
		Action:     "appointment_cancelled_by_client",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// ======================================================
// Reschedule request
// ======================================================

type RequestRescheduleInput struct {
	AppointmentID uint
	Client        ClientIdentity
	SuggestedDate string
	SuggestedTime string
}

type RequestReschedule struct {
	repo  domain.Repository
	clock timezone.Clock
	audit Auditor
}

func NewRequestReschedule(repo domain.Repository, clock timezone.Clock, audit Auditor) *RequestReschedule {
	return &RequestReschedule{repo: repo, clock: clock, audit: audit}
}

func (uc *RequestReschedule) Execute(
	ctx context.Context,
	in RequestRescheduleInput,
) (*models.Appointment, error) {

	date, err := parseDate(in.SuggestedDate)
	if err != nil {
		return nil, err
	}
	start, err := parseStart(in.SuggestedTime)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		shop, owned, err := loadOwned(ctx, tx, in.AppointmentID, in.Client)
		if err != nil {
			return err
		}
		ap = owned
		return suggest(ctx, tx, uc.clock, shop, ap, date, start)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		Actor:      audit.ActorClient,
		Action:     "appointment_reschedule_requested",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   suggestionMetadata(ap),
	})

	return ap, nil
}
