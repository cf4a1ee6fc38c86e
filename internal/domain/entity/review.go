package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a patient rating for a therapist. Reviews are create-only and
// feed the read-side average rating in the directory.
type Review struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TherapistID uuid.UUID `gorm:"type:uuid;not null;index" json:"therapist_id"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Therapist TherapistProfile `gorm:"foreignKey:TherapistID" json:"-"`
	Patient   User             `gorm:"foreignKey:PatientID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
