package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

func TestHasTimeConflict(t *testing.T) {
	store := New(timezone.Fixed(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)))
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	confirmed := store.AddAppointment(models.Appointment{
		BusinessID: 1, AppointmentDate: day, StartMinute: 600, EndMinute: 660, Status: "confirmed",
	})
	store.AddAppointment(models.Appointment{
		BusinessID: 1, AppointmentDate: day, StartMinute: 720, EndMinute: 780, Status: "rejected",
	})
	store.AddAppointment(models.Appointment{
		BusinessID: 2, AppointmentDate: day, StartMinute: 840, EndMinute: 900, Status: "pending",
	})

	cases := []struct {
		name      string
		date      time.Time
		slot      schedule.Interval
		excludeID uint
		want      bool
	}{
		{"sobrepõe confirmado", day, schedule.Interval{Start: 570, End: 630}, 0, true},
		{"encosta no fim", day, schedule.Interval{Start: 660, End: 720}, 0, false},
		{"rejeitado não bloqueia", day, schedule.Interval{Start: 720, End: 780}, 0, false},
		{"outro negócio", day, schedule.Interval{Start: 840, End: 900}, 0, false},
		{"outra data", day.AddDate(0, 0, 1), schedule.Interval{Start: 600, End: 660}, 0, false},
		{"exclui a si mesmo", day, schedule.Interval{Start: 630, End: 690}, confirmed.ID, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.Repo().HasTimeConflict(ctx, 1, tc.date, tc.slot, tc.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	store := New(timezone.Fixed(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)))
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	store.AddAppointment(models.Appointment{
		BusinessID: 1, AppointmentDate: day, StartMinute: 600, EndMinute: 660, Status: "pending",
	})

	err := store.Repo().CreateAppointment(context.Background(), &models.Appointment{
		BusinessID: 1, AppointmentDate: day, StartMinute: 630, EndMinute: 690, Status: "pending",
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Len(t, store.Appointments(), 1)
}
