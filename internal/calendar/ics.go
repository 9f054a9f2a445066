// Package calendar renders appointments as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

const productID = "-//appointment-scheduler//agenda//PT"

// Render writes the blocking appointments of shop as VEVENTs. Times are
// placed on the business wall clock and serialized in UTC.
func Render(shop models.Business, apps []models.Appointment, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	loc := timezone.Location(shop.Timezone)

	for _, ap := range apps {
		st := domain.Status(ap.Status)
		if !st.Blocks() {
			continue
		}

		ev := cal.AddEvent(eventUID(shop, ap))
		ev.SetDtStampTime(stamp)
		ev.SetCreatedTime(ap.CreatedAt)
		ev.SetStartAt(timezone.At(ap.AppointmentDate, ap.StartMinute, loc))
		ev.SetEndAt(timezone.At(ap.AppointmentDate, ap.EndMinute, loc))
		ev.SetSummary(summary(ap))
		ev.SetDescription(description(ap))
		if shop.Address != "" {
			ev.SetLocation(shop.Address)
		}

		if st == domain.StatusConfirmed {
			ev.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			ev.SetStatus(ical.ObjectStatusTentative)
		}
	}

	return cal.Serialize()
}

func eventUID(shop models.Business, ap models.Appointment) string {
	return fmt.Sprintf("appointment-%d@%s", ap.ID, shop.Slug)
}

func summary(ap models.Appointment) string {
	if ap.Service.Name == "" {
		return ap.ClientName
	}
	return ap.Service.Name + " - " + ap.ClientName
}

func description(ap models.Appointment) string {
	parts := []string{ap.ClientPhone, ap.ClientEmail}
	if ap.Observations != "" {
		parts = append(parts, ap.Observations)
	}
	return strings.Join(parts, "\n")
}
