package repository

import (
	"errors"

	"therapy-booking/internal/domain/entity"
	domainRepo "therapy-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type therapistProfileRepository struct{}

func NewTherapistProfileRepository() domainRepo.TherapistProfileRepository {
	return &therapistProfileRepository{}
}

func (r *therapistProfileRepository) Create(db *gorm.DB, profile *entity.TherapistProfile) error {
	return db.Create(profile).Error
}

func (r *therapistProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.TherapistProfile, error) {
	var profile entity.TherapistProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *therapistProfileRepository) FindDetailed(db *gorm.DB, userID uuid.UUID) (*entity.TherapistProfile, error) {
	var profile entity.TherapistProfile
	err := db.Preload("User").Preload("Availability").Preload("Reviews").
		Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *therapistProfileRepository) Update(db *gorm.DB, profile *entity.TherapistProfile) error {
	return db.Save(profile).Error
}

func (r *therapistProfileRepository) FindVerified(db *gorm.DB, maxPrice *decimal.Decimal) ([]entity.TherapistProfile, error) {
	var profiles []entity.TherapistProfile
	query := db.
		Joins("JOIN users ON users.id = therapist_profiles.user_id").
		Where("therapist_profiles.status = ?", entity.VerificationVerified).
		Where("users.is_blocked = ?", false)

	if maxPrice != nil {
		query = query.Where("therapist_profiles.hourly_rate <= ?", *maxPrice)
	}

	err := query.
		Preload("User").Preload("Availability").Preload("Reviews").
		Order("therapist_profiles.user_id").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *therapistProfileRepository) CountByStatus(db *gorm.DB, status entity.VerificationStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.TherapistProfile{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
