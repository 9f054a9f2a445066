package appointment

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID uint
	ServiceID  uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date         string
	Time         string
	Observations string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	gate     QuotaGate
	contacts validators.ContactValidator
	clock    timezone.Clock
	audit    Auditor
	recorder BookingRecorder
	logger   *slog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	gate QuotaGate,
	contacts validators.ContactValidator,
	clock timezone.Clock,
	audit Auditor,
	recorder BookingRecorder,
	logger *slog.Logger,
) *CreateAppointment {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &CreateAppointment{
		repo:     repo,
		gate:     gate,
		contacts: contacts,
		clock:    clock,
		audit:    audit,
		recorder: recorder,
		logger:   logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	date, err := parseDate(in.Date)
	if err != nil {
		uc.recorder.ObserveBooking("invalid")
		return nil, err
	}
	start, err := parseStart(in.Time)
	if err != nil {
		uc.recorder.ObserveBooking("invalid")
		return nil, err
	}
	contact, err := uc.contacts.Validate(validators.Contact{
		Name:  in.ClientName,
		Email: in.ClientEmail,
		Phone: in.ClientPhone,
	})
	if err != nil {
		uc.recorder.ObserveBooking("invalid")
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Negócio
	// --------------------------------------------------
	shop, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, notFoundAs(err, "business_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Assinatura ativa (fora da transação: a expiração precisa persistir)
	// --------------------------------------------------
	sub, err := uc.gate.Resolve(ctx, uc.repo.Subscriptions(), shop.ID)
	if err != nil {
		return nil, uc.refuse(shop.ID, err)
	}

	var created *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockBusiness(ctx, shop.ID); err != nil {
			return notFoundAs(err, "business_not_found")
		}

		// --------------------------------------------------
		// 4️⃣ Serviço
		// --------------------------------------------------
		svc, err := loadService(ctx, tx, shop.ID, in.ServiceID)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 5️⃣ Cota do plano
		// --------------------------------------------------
		if _, err := uc.gate.Enforce(ctx, tx.Subscriptions(), sub); err != nil {
			return err
		}

		// --------------------------------------------------
		// 6️⃣ Horário de funcionamento + passado + conflito
		// --------------------------------------------------
		slot := schedule.Interval{Start: start, End: start + svc.DurationMinutes}
		nowLocal := timezone.NowIn(uc.clock, shop.Timezone)

		if err := checkBookable(ctx, tx, shop, nowLocal, date, slot, 0); err != nil {
			return err
		}

		// --------------------------------------------------
		// 7️⃣ Persistência
		// --------------------------------------------------
		ap := &models.Appointment{
			BusinessID:      shop.ID,
			ServiceID:       svc.ID,
			ClientName:      contact.Name,
			ClientEmail:     contact.Email,
			ClientPhone:     contact.Phone,
			AppointmentDate: date,
			AppointmentTime: schedule.MinutesToTime(slot.Start),
			EndTime:         schedule.MinutesToTime(slot.End),
			StartMinute:     slot.Start,
			EndMinute:       slot.End,
			Status:          string(domain.InitialStatus()),
			Observations:    in.Observations,
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ap.Service = *svc
		created = ap
		return nil
	})
	if err != nil {
		return nil, uc.refuse(shop.ID, err)
	}

	uc.recorder.ObserveBooking("created")
	uc.audit.Dispatch(audit.Event{
		BusinessID: shop.ID,
		Actor:      audit.ActorClient,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &created.ID,
		Metadata: map[string]any{
			"date":  schedule.FormatDate(created.AppointmentDate),
			"start": created.AppointmentTime,
			"end":   created.EndTime,
		},
	})

	return created, nil
}

// refuse records a failed booking and passes the error through.
func (uc *CreateAppointment) refuse(businessID uint, err error) error {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		uc.recorder.ObserveBooking("error")
		uc.logger.Error("create appointment failed",
			slog.Uint64("business_id", uint64(businessID)),
			slog.Any("error", err),
		)
		return err
	}

	uc.recorder.ObserveBooking(string(be.Kind))
	uc.logger.Warn("booking refused",
		slog.Uint64("business_id", uint64(businessID)),
		slog.String("code", be.Code),
	)

	action := "booking_refused"
	if be.Kind == httperr.KindConflict {
		action = "appointment_conflict"
	}
	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Actor:      audit.ActorClient,
		Action:     action,
		Entity:     "appointment",
		Metadata:   map[string]any{"reason": be.Code},
	})

	return err
}
