package subscription

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type CreateSubscription struct {
	repo     domain.Repository
	plans    *domain.Catalog
	duration time.Duration
	clock    timezone.Clock
	audit    Auditor
	logger   *slog.Logger
}

func NewCreateSubscription(
	repo domain.Repository,
	plans *domain.Catalog,
	durationDays int,
	clock timezone.Clock,
	audit Auditor,
	logger *slog.Logger,
) *CreateSubscription {
	if durationDays <= 0 {
		durationDays = 30
	}
	return &CreateSubscription{
		repo:     repo,
		plans:    plans,
		duration: time.Duration(durationDays) * 24 * time.Hour,
		clock:    clock,
		audit:    audit,
		logger:   logger,
	}
}

type CreatedSubscription struct {
	Subscription *models.Subscription `json:"subscription"`
	Plan         domain.Plan          `json:"plan"`
}

// Execute replaces the active subscription, if any, with a fresh window of
// the chosen plan. Usage restarts with the new window.
func (uc *CreateSubscription) Execute(
	ctx context.Context,
	businessID uint,
	planKey string,
) (*CreatedSubscription, error) {

	plan, ok := uc.plans.Lookup(strings.ToLower(strings.TrimSpace(planKey)))
	if !ok {
		return nil, httperr.ErrNotFound("plan_not_found")
	}

	now := uc.clock.Now()
	sub := &models.Subscription{
		BusinessID: businessID,
		PlanKey:    plan.Key,
		StartsAt:   now,
		ExpiresAt:  now.Add(uc.duration),
		Status:     string(domain.StatusActive),
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.CancelActive(ctx, businessID, now); err != nil {
			return err
		}
		return tx.CreateSubscription(ctx, sub)
	})
	if err != nil {
		uc.logger.Error("create subscription failed",
			slog.Uint64("business_id", uint64(businessID)),
			slog.Any("error", err),
		)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Actor:      audit.ActorBusiness,
		Action:     "subscription_created",
		Entity:     "subscription",
		EntityID:   &sub.ID,
		Metadata:   map[string]any{"plan": plan.Key},
	})

	return &CreatedSubscription{Subscription: sub, Plan: plan}, nil
}
