package repository

import (
	"therapy-booking/internal/domain/entity"
	domainRepo "therapy-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *entity.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindByTherapistID(db *gorm.DB, therapistID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.Where("therapist_id = ?", therapistID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
