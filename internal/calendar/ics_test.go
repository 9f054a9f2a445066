package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func TestRenderIncludesOnlyBlockingAppointments(t *testing.T) {
	shop := models.Business{ID: 1, Name: "Studio", Slug: "studio", Timezone: "UTC"}
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	out := Render(shop, []models.Appointment{
		{ID: 1, ClientName: "Ana", AppointmentDate: date, StartMinute: 600, EndMinute: 660, Status: "confirmed"},
		{ID: 2, ClientName: "Bia", AppointmentDate: date, StartMinute: 720, EndMinute: 780, Status: "rejected"},
	}, date)

	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:appointment-1@studio")
	assert.Contains(t, out, "DTSTART:20261019T100000Z")
	assert.Contains(t, out, "DTEND:20261019T110000Z")
	assert.Contains(t, out, "SUMMARY:Ana")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.NotContains(t, out, "Bia")
}
