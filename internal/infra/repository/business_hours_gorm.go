package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type BusinessHoursGormRepository struct {
	db *gorm.DB
}

func NewBusinessHoursGormRepository(db *gorm.DB) *BusinessHoursGormRepository {
	return &BusinessHoursGormRepository{db: db}
}

func (r *BusinessHoursGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BusinessHoursGormRepository) GetBusinessHours(
	ctx context.Context,
	businessID uint,
) (*models.BusinessHours, error) {
	return getBusinessHours(ctx, r.db, businessID)
}

// SaveBusinessHours replaces the whole weekly record of the business.
func (r *BusinessHoursGormRepository) SaveBusinessHours(
	ctx context.Context,
	h *models.BusinessHours,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"hours", "updated_at"}),
		}).
		Create(h).Error
}
