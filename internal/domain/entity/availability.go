package entity

import (
	"github.com/google/uuid"
)

// Availability is one recurring weekly slot owned by a therapist profile.
// The whole set is replaced in a single transaction on every write.
type Availability struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	TherapistID uuid.UUID `gorm:"type:uuid;not null;index" json:"therapist_id"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`

	// Relationships
	Therapist TherapistProfile `gorm:"foreignKey:TherapistID" json:"-"`
}

func (Availability) TableName() string {
	return "availabilities"
}
