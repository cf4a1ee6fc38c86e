package repository

import (
	"therapy-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TherapistProfileRepository interface {
	Create(db *gorm.DB, profile *entity.TherapistProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.TherapistProfile, error)
	// FindDetailed loads the profile with its user, availability and reviews.
	FindDetailed(db *gorm.DB, userID uuid.UUID) (*entity.TherapistProfile, error)
	Update(db *gorm.DB, profile *entity.TherapistProfile) error
	// FindVerified returns VERIFIED profiles of non-blocked users with
	// hourly_rate <= maxPrice when given. Specialization and rating
	// filtering happen above the repository.
	FindVerified(db *gorm.DB, maxPrice *decimal.Decimal) ([]entity.TherapistProfile, error)
	CountByStatus(db *gorm.DB, status entity.VerificationStatus) (int64, error)
}
