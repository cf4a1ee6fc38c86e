package repository

import (
	"therapy-booking/internal/domain/entity"
	domainRepo "therapy-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) DeleteByTherapistID(db *gorm.DB, therapistID uuid.UUID) error {
	return db.Where("therapist_id = ?", therapistID).Delete(&entity.Availability{}).Error
}

func (r *availabilityRepository) CreateBatch(db *gorm.DB, slots []entity.Availability) error {
	if len(slots) == 0 {
		return nil
	}
	return db.Create(&slots).Error
}

func (r *availabilityRepository) FindByTherapistID(db *gorm.DB, therapistID uuid.UUID) ([]entity.Availability, error) {
	var slots []entity.Availability
	err := db.Where("therapist_id = ?", therapistID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
