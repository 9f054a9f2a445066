package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

func (r *AppointmentGormRepository) Subscriptions() subscription.Repository {
	return NewSubscriptionGormRepository(r.db)
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *AppointmentGormRepository) LockBusiness(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	businessID uint,
) (*models.BusinessHours, error) {
	return getBusinessHours(ctx, r.db, businessID)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) CountActiveServices(
	ctx context.Context,
	businessID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("business_id = ? AND active = ?", businessID, true).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) HasTimeConflict(
	ctx context.Context,
	businessID uint,
	date time.Time,
	slot schedule.Interval,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"business_id = ? AND appointment_date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
			businessID,
			schedule.FormatDate(date),
			domain.Strings(domain.BlockingStatuses),
			slot.End,
			slot.Start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Appointment (Confirm / Reject / Reschedule)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

// GetAppointmentForBusiness locks the row; callers run inside Transaction.
func (r *AppointmentGormRepository) GetAppointmentForBusiness(
	ctx context.Context,
	id uint,
	businessID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	businessID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_minute", "end_minute", "status").
		Where(
			"business_id = ? AND appointment_date = ? AND status IN ?",
			businessID,
			schedule.FormatDate(date),
			domain.Strings(domain.BlockingStatuses),
		).
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"business_id = ? AND appointment_date >= ? AND appointment_date < ?",
			businessID,
			schedule.FormatDate(from),
			schedule.FormatDate(to),
		).
		Order("appointment_date ASC, start_minute ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListClientAppointments(
	ctx context.Context,
	businessID uint,
	email string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("business_id = ? AND LOWER(client_email) = LOWER(?)", businessID, email).
		Order("appointment_date DESC, start_minute DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// SearchAppointments builds the optional filters with squirrel and hands
// the resulting predicate to gorm.
func (r *AppointmentGormRepository) SearchAppointments(
	ctx context.Context,
	f domain.SearchFilter,
) ([]models.Appointment, int64, error) {

	where, args, err := searchPredicate(f).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search filter: %w", err)
	}

	base := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(where, args...).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pageBounds(f.Page, f.Limit)

	var apps []models.Appointment
	if err := base.
		Preload("Service").
		Order("appointment_date DESC, start_minute ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func searchPredicate(f domain.SearchFilter) sq.And {
	where := sq.And{sq.Eq{"business_id": f.BusinessID}}

	if len(f.Statuses) > 0 {
		where = append(where, sq.Eq{"status": domain.Strings(f.Statuses)})
	}
	if f.Date != nil {
		where = append(where, sq.Eq{"appointment_date": schedule.FormatDate(*f.Date)})
	}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"appointment_date": schedule.FormatDate(*f.From)})
	}
	if f.To != nil {
		where = append(where, sq.Lt{"appointment_date": schedule.FormatDate(*f.To)})
	}

	return where
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------

func (r *AppointmentGormRepository) CountBlockingInPeriod(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"business_id = ? AND status IN ? AND appointment_date >= ? AND appointment_date < ?",
			businessID,
			domain.Strings(domain.BlockingStatuses),
			schedule.FormatDate(from),
			schedule.FormatDate(to),
		).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) SumConfirmedRevenue(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Table("appointments AS a").
		Joins("JOIN services AS s ON s.id = a.service_id").
		Where(
			"a.business_id = ? AND a.status = ? AND a.appointment_date >= ? AND a.appointment_date < ?",
			businessID,
			string(domain.StatusConfirmed),
			schedule.FormatDate(from),
			schedule.FormatDate(to),
		).
		Select("COALESCE(SUM(s.price), 0)").
		Scan(&total).Error
	return total, err
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func getBusinessHours(ctx context.Context, db *gorm.DB, businessID uint) (*models.BusinessHours, error) {
	var h models.BusinessHours
	if err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		First(&h).Error; err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
