package repository

import (
	"errors"
	"time"

	"therapy-booking/internal/domain/entity"
	domainRepo "therapy-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Therapist").Preload("Therapist.TherapistProfile").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Therapist").Preload("Therapist.TherapistProfile").
		Where("patient_id = ?", patientID).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByTherapistID(db *gorm.DB, therapistID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Therapist").
		Where("therapist_id = ?", therapistID).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindActiveSlot(db *gorm.DB, therapistID uuid.UUID, dateTime time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("therapist_id = ? AND date_time = ? AND status NOT IN ?",
		therapistID, dateTime,
		[]entity.AppointmentStatus{entity.AppointmentStatusCancelled, entity.AppointmentStatusRejected}).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) SumPaidPrice(db *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.Model(&entity.Appointment{}).
		Where("payment_status = ?", true).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *appointmentRepository) FindByDateRange(db *gorm.DB, start, end time.Time, paidOnly bool) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient").Preload("Therapist").
		Where("date_time >= ? AND date_time <= ?", start, end)
	if paidOnly {
		query = query.Where("payment_status = ?", true)
	}
	err := query.Order("date_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
