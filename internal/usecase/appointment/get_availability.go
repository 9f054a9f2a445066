package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	BusinessID uint
	ServiceID  uint
	Date       string
}

type Availability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type GetAvailability struct {
	repo        domain.Repository
	clock       timezone.Clock
	granularity int
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock, granularity int) *GetAvailability {
	if granularity <= 0 {
		granularity = schedule.DefaultGranularity
	}
	return &GetAvailability{repo: repo, clock: clock, granularity: granularity}
}

// Execute lists bookable start times. Availability is advisory: a slot
// listed here can still be taken before the client books it.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*Availability, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	out := &Availability{Date: schedule.FormatDate(date), Slots: []string{}}

	shop, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, notFoundAs(err, "business_not_found")
	}

	svc, err := loadService(ctx, uc.repo, shop.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	nowLocal := timezone.NowIn(uc.clock, shop.Timezone)
	today := timezone.DateOf(nowLocal)
	if date.Before(today) {
		return out, nil
	}

	hours, err := uc.repo.GetBusinessHours(ctx, shop.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	day := hours.Week().Day(date.Weekday())
	if !day.IsOpen {
		return out, nil
	}

	booked, err := uc.repo.ListBlockingAppointments(ctx, shop.ID, date)
	if err != nil {
		return nil, err
	}

	out.Slots = schedule.GenerateSlots(schedule.SlotQuery{
		Day:             day,
		DurationMinutes: svc.DurationMinutes,
		Booked:          domain.BookedIntervals(booked),
		IsToday:         date.Equal(today),
		NowMinutes:      timezone.MinuteOfDay(nowLocal),
		Granularity:     uc.granularity,
	})

	return out, nil
}
