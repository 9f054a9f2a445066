package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
)

// BusinessHours guarda a semana inteira em uma coluna JSONB.
// O registro é sempre substituído por completo.
type BusinessHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"not null;uniqueIndex" json:"business_id"`

	Hours datatypes.JSONType[schedule.Week] `gorm:"type:jsonb;not null" json:"hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBusinessHours(businessID uint, week schedule.Week) BusinessHours {
	return BusinessHours{
		BusinessID: businessID,
		Hours:      datatypes.NewJSONType(week),
	}
}

func (h BusinessHours) Week() schedule.Week {
	return h.Hours.Data()
}
