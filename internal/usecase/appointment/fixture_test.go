package appointment

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	domainsub "github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/testutil/memstore"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
	subuc "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

// Sunday noon; the next day is the Monday used by most scenarios.
var sundayNoon = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

const monday = "2026-10-19"

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *auditRecorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *auditRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	store   *memstore.Store
	clock   timezone.Clock
	audit   *auditRecorder
	shop    models.Business
	service models.Service
	create  *CreateAppointment
}

func splitWeek() schedule.Week {
	w := schedule.Week{}
	w[time.Monday] = schedule.Day{
		IsOpen: true,
		Intervals: []schedule.TimeRange{
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
	}
	return w
}

func newFixture(t *testing.T, now time.Time, limit int) *fixture {
	t.Helper()

	clock := timezone.Fixed(now)
	store := memstore.New(clock)

	f := &fixture{store: store, clock: clock, audit: &auditRecorder{}}
	f.shop = store.AddBusiness(models.Business{Name: "Studio", Slug: "studio", Timezone: "UTC"})
	f.service = store.AddService(models.Service{
		BusinessID:      f.shop.ID,
		Name:            "Corte",
		DurationMinutes: 60,
		Price:           50,
		Active:          true,
	})
	store.SetHours(f.shop.ID, splitWeek())
	store.AddSubscription(models.Subscription{
		BusinessID: f.shop.ID,
		PlanKey:    "test",
		StartsAt:   now.Add(-time.Hour),
		ExpiresAt:  now.Add(30 * 24 * time.Hour),
		Status:     string(domainsub.StatusActive),
	})

	plans := domainsub.NewCatalog([]domainsub.Plan{{Key: "test", Name: "Test", MonthlyLimit: limit}})
	gate := subuc.NewGate(plans, clock, discardLogger())

	f.create = NewCreateAppointment(
		store.Repo(),
		gate,
		validators.ContactValidator{},
		clock,
		f.audit,
		nil,
		discardLogger(),
	)
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fixture) input(date, at string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BusinessID:  f.shop.ID,
		ServiceID:   f.service.ID,
		ClientName:  "Ana",
		ClientEmail: "ana@example.com",
		ClientPhone: "11999990000",
		Date:        date,
		Time:        at,
	}
}

// seed stores an appointment directly, bypassing the usecase.
func (f *fixture) seed(date, at string, status string) models.Appointment {
	d, _ := schedule.ParseDate(date)
	start, _ := schedule.TimeToMinutes(at)
	return f.store.AddAppointment(models.Appointment{
		BusinessID:      f.shop.ID,
		ServiceID:       f.service.ID,
		ClientName:      "Bia",
		ClientEmail:     "bia@example.com",
		ClientPhone:     "11988880000",
		AppointmentDate: d,
		AppointmentTime: at,
		EndTime:         schedule.MinutesToTime(start + 60),
		StartMinute:     start,
		EndMinute:       start + 60,
		Status:          status,
	})
}
