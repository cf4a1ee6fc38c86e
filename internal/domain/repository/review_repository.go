package repository

import (
	"therapy-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByTherapistID(db *gorm.DB, therapistID uuid.UUID) ([]entity.Review, error)
}
