package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type SearchFilter struct {
	BusinessID uint
	Statuses   []Status
	Date       *time.Time
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls it back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// Subscriptions shares the same connection (or transaction).
	Subscriptions() subscription.Repository

	// -------- Business --------
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)

	// LockBusiness takes the business row FOR UPDATE, serializing every
	// booking and transition of that business until the transaction ends.
	LockBusiness(ctx context.Context, id uint) (*models.Business, error)

	GetBusinessHours(ctx context.Context, businessID uint) (*models.BusinessHours, error)

	// -------- Service --------
	GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error)
	CountActiveServices(ctx context.Context, businessID uint) (int64, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	HasTimeConflict(
		ctx context.Context,
		businessID uint,
		date time.Time,
		slot schedule.Interval,
		excludeID uint,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentForBusiness(ctx context.Context, id, businessID uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Listings --------
	ListBlockingAppointments(ctx context.Context, businessID uint, date time.Time) ([]models.Appointment, error)
	ListAppointmentsForPeriod(ctx context.Context, businessID uint, from, to time.Time) ([]models.Appointment, error)
	ListClientAppointments(ctx context.Context, businessID uint, email string) ([]models.Appointment, error)
	SearchAppointments(ctx context.Context, f SearchFilter) ([]models.Appointment, int64, error)

	// -------- Dashboard --------
	CountBlockingInPeriod(ctx context.Context, businessID uint, from, to time.Time) (int64, error)
	SumConfirmedRevenue(ctx context.Context, businessID uint, from, to time.Time) (float64, error)
}
