package repository

import (
	"errors"

	"therapy-booking/internal/domain/entity"
	domainRepo "therapy-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("TherapistProfile").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

func (r *userRepository) FindAll(db *gorm.DB, filter *domainRepo.UserFilter) ([]entity.User, error) {
	var users []entity.User
	query := db.Preload("TherapistProfile").Order("created_at DESC")
	if filter != nil {
		if filter.Role != "" {
			query = query.Where("role = ?", filter.Role)
		}
		if filter.IsBlocked != nil {
			query = query.Where("is_blocked = ?", *filter.IsBlocked)
		}
	}
	err := query.Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) CountByRole(db *gorm.DB, role entity.Role) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
