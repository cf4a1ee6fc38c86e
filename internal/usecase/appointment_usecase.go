package usecase

import (
	"context"
	"errors"
	"time"

	"therapy-booking/internal/converter"
	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/domain/repository"
	"therapy-booking/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrTimeSlotTaken        = errors.New("time slot is already booked")
	ErrInvalidDateTime      = errors.New("invalid date time, use RFC 3339")
	ErrNotAppointmentParty  = errors.New("not a party to this appointment")
	ErrNotAssignedTherapist = errors.New("appointment is assigned to another therapist")
	ErrIllegalTransition    = errors.New("illegal appointment status transition")
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, userID uuid.UUID, role entity.Role) (*dto.AppointmentListResponse, error)
	GetAppointmentDetails(ctx context.Context, userID uuid.UUID, role entity.Role, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, callerID uuid.UUID, role entity.Role, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                   *gorm.DB
	log                  *logrus.Logger
	appointmentRepo      repository.AppointmentRepository
	therapistProfileRepo repository.TherapistProfileRepository
	auditService         service.AuditService
	notifier             service.Notifier
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	therapistProfileRepo repository.TherapistProfileRepository,
	auditService service.AuditService,
	notifier service.Notifier,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                   db,
		log:                  log,
		appointmentRepo:      appointmentRepo,
		therapistProfileRepo: therapistProfileRepo,
		auditService:         auditService,
		notifier:             notifier,
	}
}

func (u *appointmentUsecase) BookAppointment(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, ErrInvalidDateTime
	}
	dateTime = dateTime.UTC()

	profile, err := u.therapistProfileRepo.FindByUserID(u.db.WithContext(ctx), req.TherapistID)
	if err != nil {
		u.log.Warnf("Failed to find therapist profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsVerified() || profile.User.IsBlocked {
		return nil, ErrTherapistNotFound
	}

	occupied, err := u.appointmentRepo.FindActiveSlot(u.db.WithContext(ctx), req.TherapistID, dateTime)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if occupied != nil {
		return nil, ErrTimeSlotTaken
	}

	// Price is fixed at booking time from the therapist's current rate.
	// Later rate changes must not reprice existing appointments.
	price := profile.HourlyRate.
		Mul(decimal.NewFromInt(int64(req.Duration))).
		Div(decimal.NewFromInt(60)).
		Round(2)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID:   patientID,
		TherapistID: req.TherapistID,
		DateTime:    dateTime,
		Duration:    req.Duration,
		Price:       price,
		Status:      entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// Backstop for concurrent bookings racing past the slot check.
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrTimeSlotTaken
		}
		if isForeignKeyError(err, "patient") || isForeignKeyError(err, "therapist") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), entity.JSON{
		"therapist_id": req.TherapistID.String(),
		"date_time":    dateTime.Format(time.RFC3339),
		"duration":     req.Duration,
		"price":        price.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		// The booking is committed; fall back to the bare record.
		full = appointment
	}

	u.sendBookingNotification(full)

	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, userID uuid.UUID, role entity.Role) (*dto.AppointmentListResponse, error) {
	var (
		appointments []entity.Appointment
		err          error
	)

	if role == entity.RoleTherapist {
		appointments, err = u.appointmentRepo.FindByTherapistID(u.db.WithContext(ctx), userID)
	} else {
		appointments, err = u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)
	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *appointmentUsecase) GetAppointmentDetails(ctx context.Context, userID uuid.UUID, role entity.Role, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if role != entity.RoleAdmin && appointment.PatientID != userID && appointment.TherapistID != userID {
		return nil, ErrNotAppointmentParty
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, callerID uuid.UUID, role entity.Role, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if role != entity.RoleAdmin && appointment.TherapistID != callerID {
		return nil, ErrNotAssignedTherapist
	}

	newStatus := entity.AppointmentStatus(req.Status)
	if !appointment.Status.CanTransitionTo(newStatus) {
		return nil, ErrIllegalTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, appointmentID, appointment.Status, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		// The status moved between the read and the update; the transition
		// the caller validated no longer applies.
		return nil, ErrIllegalTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, &callerID, entity.AuditActionAppointmentStatus, "appointment", appointmentID.String(),
		entity.JSON{"status": string(appointment.Status)},
		entity.JSON{"status": string(newStatus)},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Status = newStatus
	return converter.AppointmentToResponse(appointment), nil
}

// sendBookingNotification publishes the booked event so both parties get an
// email. The booking is already committed, so failures are only logged.
func (u *appointmentUsecase) sendBookingNotification(appointment *entity.Appointment) {
	if u.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := &service.AppointmentBookedEvent{
		AppointmentID:  appointment.ID.String(),
		PatientEmail:   appointment.Patient.Email,
		TherapistEmail: appointment.Therapist.Email,
		DateTime:       appointment.DateTime,
		Duration:       appointment.Duration,
		Price:          appointment.Price.String(),
		BookedAt:       time.Now().UTC(),
	}
	if err := u.notifier.PublishAppointmentBooked(ctx, event); err != nil {
		u.log.Warnf("Failed to publish appointment booked event: %+v", err)
	}
}
