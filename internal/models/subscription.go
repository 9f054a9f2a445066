package models

import "time"

type Subscription struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"not null;index" json:"business_id"`

	PlanKey   string    `gorm:"size:30;not null" json:"plan_key"`
	StartsAt  time.Time `gorm:"not null" json:"starts_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Status    string    `gorm:"size:20;not null;default:'active';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
