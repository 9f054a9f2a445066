package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint `gorm:"not null;index:idx_appointments_business_date,priority:1" json:"business_id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:150;not null;index" json:"client_email"`
	ClientPhone string `gorm:"size:30;not null" json:"client_phone"`

	// Data de calendário (meia-noite UTC) + horário de parede do negócio.
	AppointmentDate time.Time `gorm:"type:date;not null;index:idx_appointments_business_date,priority:2" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5;not null" json:"appointment_time"`
	EndTime         string    `gorm:"size:5;not null" json:"end_time"`

	// Persistidos na criação; nunca recalculados se o serviço mudar.
	StartMinute int `gorm:"not null" json:"start_minute"`
	EndMinute   int `gorm:"not null" json:"end_minute"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Observations    string `gorm:"type:text" json:"observations"`
	RejectionReason string `gorm:"type:text" json:"rejection_reason"`

	SuggestedDate    *time.Time `gorm:"type:date" json:"suggested_date"`
	SuggestedTime    string     `gorm:"size:5" json:"suggested_time"`
	SuggestedEndTime string     `gorm:"size:5" json:"suggested_end_time"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
