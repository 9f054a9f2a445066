package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

func (r *SubscriptionGormRepository) Transaction(
	ctx context.Context,
	fn func(tx subscription.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SubscriptionGormRepository{db: tx})
	})
}

func (r *SubscriptionGormRepository) GetActive(
	ctx context.Context,
	businessID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status = ?", businessID, string(subscription.StatusActive)).
		Order("starts_at DESC").
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) CreateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return subscriptionWriteErr(r.db.WithContext(ctx).Create(sub).Error)
}

func (r *SubscriptionGormRepository) UpdateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return subscriptionWriteErr(r.db.WithContext(ctx).Save(sub).Error)
}

func (r *SubscriptionGormRepository) CancelActive(
	ctx context.Context,
	businessID uint,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("business_id = ? AND status = ?", businessID, string(subscription.StatusActive)).
		Updates(map[string]any{
			"status":     string(subscription.StatusCanceled),
			"expires_at": at,
		}).Error
}

func (r *SubscriptionGormRepository) CountUsage(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
	statuses []string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"business_id = ? AND status IN ? AND created_at >= ? AND created_at < ?",
			businessID, statuses, from, to,
		).
		Count(&count).Error
	return count, err
}

// subscriptionWriteErr maps the subscriptions_one_active index firing to a
// conflict: another request activated a plan for the same business.
func subscriptionWriteErr(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("subscription_conflict")
	}
	return err
}

var _ subscription.Repository = (*SubscriptionGormRepository)(nil)
