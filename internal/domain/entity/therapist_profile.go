package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VerificationStatus is the admin-controlled gate that decides whether a
// therapist appears in the public directory.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// StringList stores an ordered list of strings as a JSONB column.
type StringList []string

// Value returns json value, implements driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan scans a database value into the list, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []string
	err := json.Unmarshal(bytes, &result)
	*l = StringList(result)
	return err
}

// Contains reports whether the list holds the given value.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// TherapistProfile extends a User with role=THERAPIST. Professional fields
// are mutated by the owner; Status and RejectionReason only by an admin.
type TherapistProfile struct {
	UserID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization  StringList         `gorm:"type:jsonb" json:"specialization"`
	Bio             string             `gorm:"type:text" json:"bio,omitempty"`
	Experience      int                `gorm:"not null;default:0" json:"experience"`
	Education       StringList         `gorm:"type:jsonb" json:"education"`
	HourlyRate      decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	Status          VerificationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RejectionReason string             `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Relationships
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []Availability `gorm:"foreignKey:TherapistID" json:"availability,omitempty"`
	Reviews      []Review       `gorm:"foreignKey:TherapistID" json:"reviews,omitempty"`
}

func (TherapistProfile) TableName() string {
	return "therapist_profiles"
}

func (p *TherapistProfile) IsVerified() bool {
	return p.Status == VerificationVerified
}

// AverageRating averages the loaded reviews. A therapist without reviews is
// unrated: the second return value is 0 and callers must not compare the
// average against rating filters.
func (p *TherapistProfile) AverageRating() (float64, int) {
	if len(p.Reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews)), len(p.Reviews)
}
