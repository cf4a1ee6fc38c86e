package repository

import (
	"therapy-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role      entity.Role // zero value matches all roles
	IsBlocked *bool
}

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	FindAll(db *gorm.DB, filter *UserFilter) ([]entity.User, error)
	CountByRole(db *gorm.DB, role entity.Role) (int64, error)
}
