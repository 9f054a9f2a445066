package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type ExportCalendar struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewExportCalendar(repo domain.Repository, clock timezone.Clock) *ExportCalendar {
	return &ExportCalendar{repo: repo, clock: clock}
}

// Execute renders the pending and confirmed appointments of one month as
// an .ics document.
func (uc *ExportCalendar) Execute(ctx context.Context, businessID uint, year, month int) (string, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return "", httperr.ErrValidation("invalid_month")
	}

	shop, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return "", notFoundAs(err, "business_not_found")
	}

	from, to := timezone.MonthRange(year, time.Month(month))
	apps, err := uc.repo.ListAppointmentsForPeriod(ctx, businessID, from, to)
	if err != nil {
		return "", err
	}

	return calendar.Render(*shop, apps, uc.clock.Now()), nil
}
