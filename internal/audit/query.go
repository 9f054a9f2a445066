package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Filter struct {
	BusinessID uint
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time // inclusive day
	Page       int
	Limit      int
}

// Normalize clamps paging to page >= 1 and 1 <= limit <= 200 (default 50).
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return f
}

// List reads the business' audit trail, newest first.
func (s *GormSink) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	// --------------------------------------------------
	// Query base (sempre protegido por business)
	// --------------------------------------------------

	q := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("business_id = ?", f.BusinessID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
