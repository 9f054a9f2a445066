package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

// QuotaGate is satisfied by the subscription usecase package's Gate.
type QuotaGate interface {
	Resolve(ctx context.Context, repo subscription.Repository, businessID uint) (*models.Subscription, error)
	Enforce(ctx context.Context, repo subscription.Repository, sub *models.Subscription) (subscription.Usage, error)
}

// BookingRecorder counts booking attempts by outcome.
type BookingRecorder interface {
	ObserveBooking(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) ObserveBooking(string) {}

// ======================================================
// Shared rules
// ======================================================

func parseDate(s string) (time.Time, error) {
	d, err := schedule.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return d, nil
}

func parseStart(s string) (int, error) {
	m, err := schedule.TimeToMinutes(strings.TrimSpace(s))
	if err != nil {
		return 0, httperr.ErrValidation("invalid_time")
	}
	return m, nil
}

// notFoundAs converts a repository miss into a NotFound business error.
func notFoundAs(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

func loadService(ctx context.Context, repo domain.Repository, businessID, serviceID uint) (*models.Service, error) {
	svc, err := repo.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}
	if svc.DurationMinutes <= 0 {
		return nil, httperr.ErrValidation("invalid_service_duration")
	}
	return svc, nil
}

// isPast reports whether date+start already happened on the business wall
// clock.
func isPast(nowLocal time.Time, date time.Time, start int) bool {
	today := timezone.DateOf(nowLocal)
	if date.Before(today) {
		return true
	}
	return date.Equal(today) && start < timezone.MinuteOfDay(nowLocal)
}

// checkBookable applies, in order: business hours, not in the past, no
// overlap with another pending/confirmed appointment (excludeID aside).
// Callers hold the business lock.
func checkBookable(
	ctx context.Context,
	tx domain.Repository,
	shop *models.Business,
	nowLocal time.Time,
	date time.Time,
	slot schedule.Interval,
	excludeID uint,
) error {

	hours, err := tx.GetBusinessHours(ctx, shop.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrOutOfHours("business_hours_not_configured")
	}
	if err != nil {
		return err
	}

	if !schedule.IsWithinBusinessHours(hours.Week(), date.Weekday(), slot) {
		return httperr.ErrOutOfHours("outside_business_hours")
	}

	if isPast(nowLocal, date, slot.Start) {
		return httperr.ErrValidation("in_the_past")
	}

	conflict, err := tx.HasTimeConflict(ctx, shop.ID, date, slot, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return httperr.ErrConflict("time_conflict")
	}

	return nil
}
