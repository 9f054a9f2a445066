package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	businessID uint,
	date string,
) ([]dto.AppointmentDTO, error) {

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		businessID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments), nil
}
