package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type RescheduleInput struct {
	BusinessID    uint
	AppointmentID uint
	SuggestedDate string
	SuggestedTime string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	audit Auditor
}

func NewRescheduleAppointment(repo domain.Repository, clock timezone.Clock, audit Auditor) *RescheduleAppointment {
	return &RescheduleAppointment{repo: repo, clock: clock, audit: audit}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
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
		shop, err := tx.LockBusiness(ctx, in.BusinessID)
		if err != nil {
			return notFoundAs(err, "business_not_found")
		}

		ap, err = tx.GetAppointmentForBusiness(ctx, in.AppointmentID, shop.ID)
		if err != nil {
			return notFoundAs(err, "appointment_not_found")
		}

		return suggest(ctx, tx, uc.clock, shop, ap, date, start)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Actor:      audit.ActorBusiness,
		Action:     "appointment_rescheduled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   suggestionMetadata(ap),
	})

	return ap, nil
}

// suggest validates and stores a new date/time for a pending appointment.
// The suggested end comes from the current service duration; the slot must
// respect business hours and not overlap anything but the appointment itself.
func suggest(
	ctx context.Context,
	tx domain.Repository,
	clock timezone.Clock,
	shop *models.Business,
	ap *models.Appointment,
	date time.Time,
	start int,
) error {

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return err
	}

	svc, err := loadService(ctx, tx, shop.ID, ap.ServiceID)
	if err != nil {
		return err
	}

	slot := schedule.Interval{Start: start, End: start + svc.DurationMinutes}
	nowLocal := timezone.NowIn(clock, shop.Timezone)

	if err := checkBookable(ctx, tx, shop, nowLocal, date, slot, ap.ID); err != nil {
		return err
	}

	if err := domain.Reschedule(ap, domain.Suggestion{Date: date, Slot: slot}); err != nil {
		return err
	}
	return tx.UpdateAppointment(ctx, ap)
}

func suggestionMetadata(ap *models.Appointment) map[string]any {
	meta := map[string]any{
		"suggested_time":     ap.SuggestedTime,
		"suggested_end_time": ap.SuggestedEndTime,
	}
	if ap.SuggestedDate != nil {
		meta["suggested_date"] = schedule.FormatDate(*ap.SuggestedDate)
	}
	return meta
}
