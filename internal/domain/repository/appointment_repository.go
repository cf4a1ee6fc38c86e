package repository

import (
	"time"

	"therapy-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByTherapistID(db *gorm.DB, therapistID uuid.UUID) ([]entity.Appointment, error)
	// UpdateStatus applies the transition only while the row still holds
	// from, so concurrent legal transitions cannot both land. The affected
	// row count tells callers whether theirs did.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	// FindActiveSlot returns the non-cancelled, non-rejected appointment
	// occupying (therapist, dateTime), if any.
	FindActiveSlot(db *gorm.DB, therapistID uuid.UUID, dateTime time.Time) (*entity.Appointment, error)
	Count(db *gorm.DB) (int64, error)
	SumPaidPrice(db *gorm.DB) (decimal.Decimal, error)
	FindByDateRange(db *gorm.DB, start, end time.Time, paidOnly bool) ([]entity.Appointment, error)
}
