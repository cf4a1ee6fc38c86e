package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusRejected  AppointmentStatus = "REJECTED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo enforces the status state machine:
// PENDING -> CONFIRMED | REJECTED, CONFIRMED -> COMPLETED | CANCELLED.
// COMPLETED, CANCELLED and REJECTED are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusRejected
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	}
	return false
}

// IsActive reports whether the appointment still occupies its time slot.
func (s AppointmentStatus) IsActive() bool {
	return s != AppointmentStatusCancelled && s != AppointmentStatusRejected
}

// Appointment records one booking between a patient and a therapist. Price
// is computed once at creation from the therapist's hourly rate and never
// recalculated.
type Appointment struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	TherapistID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"therapist_id"`
	DateTime      time.Time         `gorm:"not null;index" json:"date_time"`
	Duration      int               `gorm:"not null" json:"duration"`
	Price         decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	PaymentStatus bool              `gorm:"not null;default:false" json:"payment_status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Therapist User `gorm:"foreignKey:TherapistID" json:"therapist,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
