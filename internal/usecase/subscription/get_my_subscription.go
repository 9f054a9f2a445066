package subscription

import (
	"context"
	"math"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type MySubscription struct {
	HasActive    bool                 `json:"has_active"`
	Plan         *domain.Plan         `json:"plan,omitempty"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
	DaysLeft     int                  `json:"days_left"`
	Usage        *domain.Usage        `json:"usage,omitempty"`
}

type GetMySubscription struct {
	repo  domain.Repository
	gate  *Gate
	plans *domain.Catalog
	clock timezone.Clock
}

func NewGetMySubscription(
	repo domain.Repository,
	gate *Gate,
	plans *domain.Catalog,
	clock timezone.Clock,
) *GetMySubscription {
	return &GetMySubscription{repo: repo, gate: gate, plans: plans, clock: clock}
}

func (uc *GetMySubscription) Execute(ctx context.Context, businessID uint) (*MySubscription, error) {
	sub, err := uc.gate.Resolve(ctx, uc.repo, businessID)
	if httperr.IsKind(err, httperr.KindNoSubscription) || httperr.IsKind(err, httperr.KindSubscriptionExpired) {
		return &MySubscription{HasActive: false}, nil
	}
	if err != nil {
		return nil, err
	}

	usage, err := uc.gate.Usage(ctx, uc.repo, sub)
	if httperr.IsKind(err, httperr.KindNoSubscription) {
		return &MySubscription{HasActive: false}, nil
	}
	if err != nil {
		return nil, err
	}

	plan, _ := uc.plans.Lookup(sub.PlanKey)

	return &MySubscription{
		HasActive:    true,
		Plan:         &plan,
		Subscription: sub,
		DaysLeft:     daysLeft(sub.ExpiresAt, uc.clock.Now()),
		Usage:        &usage,
	}, nil
}

func daysLeft(expiresAt, now time.Time) int {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}
