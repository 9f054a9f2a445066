package subscription

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

// Gate decides whether a business may receive one more booking.
//
// It runs in two phases so callers can persist an expiry outside the
// booking transaction: Resolve finds the active subscription (expiring it
// when due), Enforce counts usage against the plan limit.
type Gate struct {
	plans  *domain.Catalog
	clock  timezone.Clock
	logger *slog.Logger
}

func NewGate(plans *domain.Catalog, clock timezone.Clock, logger *slog.Logger) *Gate {
	return &Gate{plans: plans, clock: clock, logger: logger}
}

func (g *Gate) Check(
	ctx context.Context,
	repo domain.Repository,
	businessID uint,
) (domain.Usage, error) {

	sub, err := g.Resolve(ctx, repo, businessID)
	if err != nil {
		return domain.Usage{}, err
	}
	return g.Enforce(ctx, repo, sub)
}

func (g *Gate) Resolve(
	ctx context.Context,
	repo domain.Repository,
	businessID uint,
) (*models.Subscription, error) {

	sub, err := repo.GetActive(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, httperr.ErrNoActiveSubscription()
	}

	if !sub.ExpiresAt.After(g.clock.Now()) {
		sub.Status = string(domain.StatusExpired)
		if err := repo.UpdateSubscription(ctx, sub); err != nil {
			return nil, err
		}
		g.logger.Info("subscription expired",
			slog.Uint64("business_id", uint64(businessID)),
			slog.Uint64("subscription_id", uint64(sub.ID)),
		)
		return nil, httperr.ErrSubscriptionExpired()
	}

	return sub, nil
}

func (g *Gate) Enforce(
	ctx context.Context,
	repo domain.Repository,
	sub *models.Subscription,
) (domain.Usage, error) {

	usage, err := g.Usage(ctx, repo, sub)
	if err != nil {
		return domain.Usage{}, err
	}

	if usage.Exhausted() {
		g.logger.Warn("monthly limit reached",
			slog.Uint64("business_id", uint64(sub.BusinessID)),
			slog.Int("used", usage.Used),
			slog.Int("limit", usage.Limit),
		)
		return usage, httperr.ErrQuotaExceeded(usage)
	}
	return usage, nil
}

// Usage reports consumption of the subscription window without failing on
// an exhausted quota.
func (g *Gate) Usage(
	ctx context.Context,
	repo domain.Repository,
	sub *models.Subscription,
) (domain.Usage, error) {

	plan, ok := g.plans.Lookup(sub.PlanKey)
	if !ok {
		// plano removido do catálogo
		g.logger.Warn("subscription references unknown plan", slog.String("plan", sub.PlanKey))
		return domain.Usage{}, httperr.ErrNoActiveSubscription()
	}

	if plan.Unlimited() {
		return domain.NewUsage(0, plan), nil
	}

	used, err := repo.CountUsage(
		ctx,
		sub.BusinessID,
		sub.StartsAt,
		sub.ExpiresAt,
		appointment.Strings(appointment.UsageStatuses),
	)
	if err != nil {
		return domain.Usage{}, err
	}

	return domain.NewUsage(int(used), plan), nil
}
