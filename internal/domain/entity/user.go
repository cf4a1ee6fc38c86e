package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized account table for patients, therapists
// and administrators. Accounts are blocked, never hard-deleted.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Role        Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	IsBlocked   bool      `gorm:"not null;default:false;index" json:"is_blocked"`
	IsVerified  bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	TherapistProfile *TherapistProfile `gorm:"foreignKey:UserID" json:"therapist_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the UUID primary key in the application so inserts
// behave the same on postgres and the sqlite driver used in tests.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
