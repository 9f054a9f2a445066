package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type DashboardStats struct {
	TodayAppointments int64   `json:"today_appointments"`
	MonthAppointments int64   `json:"month_appointments"`
	ActiveServices    int64   `json:"active_services"`
	MonthRevenue      float64 `json:"month_revenue"`
}

type GetDashboardStats struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetDashboardStats(repo domain.Repository, clock timezone.Clock) *GetDashboardStats {
	return &GetDashboardStats{repo: repo, clock: clock}
}

// Execute summarizes the business' current day and month. Counts include
// pending and confirmed appointments; revenue only confirmed ones.
func (uc *GetDashboardStats) Execute(ctx context.Context, businessID uint) (*DashboardStats, error) {
	shop, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, notFoundAs(err, "business_not_found")
	}

	today := timezone.DateOf(timezone.NowIn(uc.clock, shop.Timezone))
	monthFrom, monthTo := timezone.MonthRange(today.Year(), today.Month())

	var stats DashboardStats

	if stats.TodayAppointments, err = uc.repo.CountBlockingInPeriod(ctx, businessID, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	if stats.MonthAppointments, err = uc.repo.CountBlockingInPeriod(ctx, businessID, monthFrom, monthTo); err != nil {
		return nil, err
	}
	if stats.ActiveServices, err = uc.repo.CountActiveServices(ctx, businessID); err != nil {
		return nil, err
	}
	if stats.MonthRevenue, err = uc.repo.SumConfirmedRevenue(ctx, businessID, monthFrom, monthTo); err != nil {
		return nil, err
	}

	return &stats, nil
}
