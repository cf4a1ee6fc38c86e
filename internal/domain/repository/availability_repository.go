package repository

import (
	"therapy-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	// DeleteByTherapistID and CreateBatch implement the replace-on-write
	// policy; callers run both inside one transaction.
	DeleteByTherapistID(db *gorm.DB, therapistID uuid.UUID) error
	CreateBatch(db *gorm.DB, slots []entity.Availability) error
	FindByTherapistID(db *gorm.DB, therapistID uuid.UUID) ([]entity.Availability, error)
}
