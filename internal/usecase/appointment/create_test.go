package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)

	ap, err := f.create.Execute(context.Background(), f.input(monday, "09:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, "09:00", ap.AppointmentTime)
	assert.Equal(t, "10:00", ap.EndTime)
	assert.Equal(t, 540, ap.StartMinute)
	assert.Equal(t, 600, ap.EndMinute)
	assert.Equal(t, "Corte", ap.Service.Name)

	stored, ok := f.store.Appointment(ap.ID)
	require.True(t, ok)
	assert.Equal(t, time.Monday, stored.AppointmentDate.Weekday())

	assert.Equal(t, []string{"appointment_created"}, f.audit.actions())
}

func TestCreateAcceptsSeconds(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)

	ap, err := f.create.Execute(context.Background(), f.input(monday, "14:00:00"))
	require.NoError(t, err)
	assert.Equal(t, "14:00", ap.AppointmentTime)
}

func TestCreateConflictsWithConfirmed(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)
	f.seed(monday, "10:00", string(domain.StatusConfirmed))

	_, err := f.create.Execute(context.Background(), f.input(monday, "09:30"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Len(t, f.store.Appointments(), 1)
	assert.Equal(t, []string{"appointment_conflict"}, f.audit.actions())
}

func TestCreateIgnoresRejectedAndTouching(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)
	f.seed(monday, "10:00", string(domain.StatusRejected))
	f.seed(monday, "11:00", string(domain.StatusConfirmed))

	_, err := f.create.Execute(context.Background(), f.input(monday, "10:00"))
	assert.NoError(t, err)
}

func TestCreateOutsideBusinessHours(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)

	cases := map[string]string{
		"straddles lunch": "11:30",
		"before opening":  "08:00",
		"after closing":   "17:30",
	}
	for name, at := range cases {
		_, err := f.create.Execute(context.Background(), f.input(monday, at))
		assert.True(t, httperr.IsBusiness(err, "outside_business_hours"), name)
	}

	// Tuesday is closed in this week.
	_, err := f.create.Execute(context.Background(), f.input("2026-10-20", "10:00"))
	assert.True(t, httperr.IsKind(err, httperr.KindOutOfHours))
	assert.Empty(t, f.store.Appointments())
}

func TestCreateWithoutBusinessHours(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)

	bare := f.store.AddBusiness(models.Business{Name: "Bare", Slug: "bare", Timezone: "UTC"})
	svc := f.store.AddService(models.Service{BusinessID: bare.ID, Name: "Corte", DurationMinutes: 60, Active: true})
	f.store.AddSubscription(models.Subscription{
		BusinessID: bare.ID,
		PlanKey:    "test",
		StartsAt:   sundayNoon.Add(-time.Hour),
		ExpiresAt:  sundayNoon.Add(24 * time.Hour),
		Status:     "active",
	})

	in := f.input(monday, "10:00")
	in.BusinessID = bare.ID
	in.ServiceID = svc.ID

	_, err := f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "business_hours_not_configured"))
	assert.True(t, httperr.IsKind(err, httperr.KindOutOfHours))
}

func TestCreateRejectsPastStart(t *testing.T) {
	mondayTen := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, mondayTen, 20)

	_, err := f.create.Execute(context.Background(), f.input(monday, "09:00"))
	assert.True(t, httperr.IsBusiness(err, "in_the_past"))

	_, err = f.create.Execute(context.Background(), f.input(monday, "10:00"))
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, f.input("2026-13-01", "10:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = f.create.Execute(ctx, f.input(monday, "9:30"))
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	_, err = f.create.Execute(ctx, f.input(monday, "25:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	in := f.input(monday, "10:00")
	in.ClientEmail = "not-an-email"
	_, err = f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_email"))

	assert.Empty(t, f.store.Appointments())
}

func TestCreateUnknownBusinessOrService(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)
	ctx := context.Background()

	in := f.input(monday, "10:00")
	in.ServiceID = 999
	_, err := f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	in = f.input(monday, "10:00")
	in.BusinessID = 999
	_, err = f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "business_not_found"))
}

func TestCreateQuotaBoundary(t *testing.T) {
	f := newFixture(t, sundayNoon, 2)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, f.input(monday, "09:00"))
	require.NoError(t, err)
	_, err = f.create.Execute(ctx, f.input(monday, "10:00"))
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, f.input(monday, "14:00"))
	require.True(t, httperr.IsKind(err, httperr.KindQuotaExceeded))

	be, _ := httperr.AsBusiness(err)
	assert.Equal(t, "monthly_limit_reached", be.Code)
	assert.Len(t, f.store.Appointments(), 2)
}

func TestCreateWithoutSubscription(t *testing.T) {
	f := newFixture(t, sundayNoon, 20)
	require.NoError(t, f.store.SubscriptionRepo().CancelActive(context.Background(), f.shop.ID, sundayNoon))

	_, err := f.create.Execute(context.Background(), f.input(monday, "10:00"))
	assert.True(t, httperr.IsKind(err, httperr.KindNoSubscription))
}

func TestConcurrentCreatesNeverDoubleBook(t *testing.T) {
	f := newFixture(t, sundayNoon, 0)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	// Every start overlaps 10:00-11:00 except 09:00 and 11:00.
	starts := []string{"09:30", "09:45", "10:00", "10:15", "10:30"}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(at string) {
			defer wg.Done()
			_, err := f.create.Execute(context.Background(), f.input(monday, at))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case httperr.IsKind(err, httperr.KindConflict):
				conflicts++
			}
		}(starts[i%len(starts)])
	}
	wg.Wait()

	assert.Equal(t, workers, created+conflicts)

	apps := f.store.Appointments()
	for i := range apps {
		for j := i + 1; j < len(apps); j++ {
			assert.False(t,
				domain.SlotOf(apps[i]).Overlaps(domain.SlotOf(apps[j])),
				"%s and %s overlap", apps[i].AppointmentTime, apps[j].AppointmentTime,
			)
		}
	}
	assert.Equal(t, created, len(apps))
	assert.GreaterOrEqual(t, created, 1)
	assert.LessOrEqual(t, created, 2)
}
