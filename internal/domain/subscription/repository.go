package subscription

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// GetActive returns the latest active subscription, or nil when the
	// business has none.
	GetActive(ctx context.Context, businessID uint) (*models.Subscription, error)

	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error

	// CancelActive marks every active subscription of the business as
	// canceled, ending it at the given instant.
	CancelActive(ctx context.Context, businessID uint, at time.Time) error

	// CountUsage counts appointments created in [from, to) with one of the
	// given statuses.
	CountUsage(ctx context.Context, businessID uint, from, to time.Time, statuses []string) (int64, error)
}
