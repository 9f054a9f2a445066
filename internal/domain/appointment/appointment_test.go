package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func pending() *models.Appointment {
	return &models.Appointment{ID: 1, Status: string(StatusPending), StartMinute: 600, EndMinute: 660}
}

func TestTransitionsFromPending(t *testing.T) {
	ap := pending()
	require.NoError(t, Confirm(ap))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	ap = pending()
	require.NoError(t, Reject(ap, "  sem horário  "))
	assert.Equal(t, string(StatusRejected), ap.Status)
	assert.Equal(t, "sem horário", ap.RejectionReason)

	ap = pending()
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Reschedule(ap, Suggestion{Date: date, Slot: schedule.Interval{Start: 840, End: 900}}))
	assert.Equal(t, string(StatusRescheduled), ap.Status)
	assert.Equal(t, "14:00", ap.SuggestedTime)
	assert.Equal(t, "15:00", ap.SuggestedEndTime)
	assert.Equal(t, date, *ap.SuggestedDate)
	assert.Equal(t, 600, ap.StartMinute, "original slot is kept")
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	for _, st := range []Status{StatusConfirmed, StatusRejected, StatusRescheduled} {
		ap := &models.Appointment{Status: string(st)}

		assert.True(t, httperr.IsKind(Confirm(ap), httperr.KindInvalidState), st)
		assert.True(t, httperr.IsKind(Reject(ap, ""), httperr.KindInvalidState), st)
		assert.True(t, httperr.IsKind(Reschedule(ap, Suggestion{}), httperr.KindInvalidState), st)
		assert.Equal(t, string(st), ap.Status, "status unchanged")
	}
}

func TestCancelByClient(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(st)}
		require.NoError(t, CancelByClient(ap))
		assert.Equal(t, string(StatusRejected), ap.Status)
	}

	for _, st := range []Status{StatusRejected, StatusRescheduled} {
		ap := &models.Appointment{Status: string(st)}
		assert.True(t, httperr.IsKind(CancelByClient(ap), httperr.KindInvalidState))
	}
}

func TestBelongsToClient(t *testing.T) {
	ap := &models.Appointment{ClientEmail: "Ana@Example.com", ClientPhone: "(11) 99999-0000"}

	assert.True(t, BelongsToClient(ap, "ana@example.com", "11999990000"))
	assert.False(t, BelongsToClient(ap, "ana@example.com", "11999990001"))
	assert.False(t, BelongsToClient(ap, "", ""))
}

func TestFindConflict(t *testing.T) {
	existing := []models.Appointment{
		{ID: 1, Status: string(StatusConfirmed), StartMinute: 600, EndMinute: 660},
		{ID: 2, Status: string(StatusRejected), StartMinute: 720, EndMinute: 780},
		{ID: 3, Status: string(StatusPending), StartMinute: 840, EndMinute: 900},
	}

	c := FindConflict(schedule.Interval{Start: 570, End: 630}, existing, 0)
	require.NotNil(t, c)
	assert.Equal(t, uint(1), c.ID)

	assert.Nil(t, FindConflict(schedule.Interval{Start: 660, End: 720}, existing, 0), "touching")
	assert.Nil(t, FindConflict(schedule.Interval{Start: 720, End: 780}, existing, 0), "rejected does not block")
	assert.Nil(t, FindConflict(schedule.Interval{Start: 840, End: 900}, existing, 3), "own id excluded")

	assert.Equal(t, []schedule.Interval{{Start: 600, End: 660}, {Start: 840, End: 900}}, BookedIntervals(existing))
}
