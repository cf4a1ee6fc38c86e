package usecase

import (
	"context"
	"testing"
	"time"

	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type appointmentFixture struct {
	usecase  AppointmentUsecase
	db       *gorm.DB
	notifier *captureNotifier
}

func newAppointmentFixture(t *testing.T, name string) *appointmentFixture {
	t.Helper()

	db := newTestDB(t, name)
	notifier := &captureNotifier{}
	uc := NewAppointmentUsecase(
		db,
		newTestLogger(),
		repository.NewAppointmentRepository(),
		repository.NewTherapistProfileRepository(),
		newTestAuditService(db),
		notifier,
	)
	return &appointmentFixture{usecase: uc, db: db, notifier: notifier}
}

func bookRequest(therapistID uuid.UUID, dateTime string, duration int) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		TherapistID: therapistID,
		DateTime:    dateTime,
		Duration:    duration,
	}
}

func TestBookAppointmentComputesPrice(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_book_price")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	resp, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 90))
	require.NoError(t, err)

	// 80/hour for 90 minutes.
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(120)), "got %s", resp.Price)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, 90, resp.Duration)
	require.Len(t, f.notifier.booked, 1)
}

func TestBookAppointmentPriceSurvivesRateChange(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_price_frozen")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "100")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	resp, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)
	require.True(t, resp.Price.Equal(decimal.NewFromInt(100)))

	require.NoError(t, f.db.Model(&entity.TherapistProfile{}).
		Where("user_id = ?", therapist.ID).
		Update("hourly_rate", decimal.NewFromInt(500)).Error)

	var stored entity.Appointment
	require.NoError(t, f.db.First(&stored, "id = ?", resp.ID).Error)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(100)))
}

func TestBookAppointmentRejectsOccupiedSlot(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_slot_conflict")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	alice := createTestUser(t, f.db, "alice@example.com", entity.RolePatient)
	bob := createTestUser(t, f.db, "bob@example.com", entity.RolePatient)

	_, err := f.usecase.BookAppointment(ctx, alice.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)

	_, err = f.usecase.BookAppointment(ctx, bob.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	assert.ErrorIs(t, err, ErrTimeSlotTaken)
}

func TestBookAppointmentCancelledSlotIsFree(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_slot_freed")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	alice := createTestUser(t, f.db, "alice@example.com", entity.RolePatient)
	bob := createTestUser(t, f.db, "bob@example.com", entity.RolePatient)

	first, err := f.usecase.BookAppointment(ctx, alice.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)

	_, err = f.usecase.UpdateStatus(ctx, therapist.ID, entity.RoleTherapist, first.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "REJECTED"})
	require.NoError(t, err)

	_, err = f.usecase.BookAppointment(ctx, bob.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	assert.NoError(t, err)
}

func TestBookAppointmentRejectsUnverifiedTherapist(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_unverified")
	ctx := context.Background()

	pending := createTestUser(t, f.db, "pending@example.com", entity.RoleTherapist)
	require.NoError(t, f.db.Create(&entity.TherapistProfile{
		UserID:     pending.ID,
		HourlyRate: decimal.NewFromInt(80),
		Status:     entity.VerificationPending,
	}).Error)
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	_, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(pending.ID, "2026-09-01T10:00:00Z", 60))
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestBookAppointmentRejectsBlockedTherapist(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_blocked_therapist")
	ctx := context.Background()

	// Verified but blocked, so hidden from the directory and not bookable
	// by ID either.
	therapist := createVerifiedTherapist(t, f.db, "blocked@example.com", "80")
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", therapist.ID).Update("is_blocked", true).Error)
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	_, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestBookAppointmentInvalidDateTime(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_bad_datetime")

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	_, err := f.usecase.BookAppointment(context.Background(), patient.ID,
		bookRequest(therapist.ID, "next tuesday", 60))
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_transitions")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	appt, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)

	// PENDING -> COMPLETED skips confirmation.
	_, err = f.usecase.UpdateStatus(ctx, therapist.ID, entity.RoleTherapist, appt.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "COMPLETED"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	confirmed, err := f.usecase.UpdateStatus(ctx, therapist.ID, entity.RoleTherapist, appt.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)

	completed, err := f.usecase.UpdateStatus(ctx, therapist.ID, entity.RoleTherapist, appt.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", completed.Status)

	// COMPLETED is terminal.
	_, err = f.usecase.UpdateStatus(ctx, therapist.ID, entity.RoleTherapist, appt.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateStatusIsANoOpWhenStatusMoved(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_stale_transition")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	appt, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)

	repo := repository.NewAppointmentRepository()

	// A transition validated against a stale read must not apply once the
	// row has moved on.
	rows, err := repo.UpdateStatus(f.db, appt.ID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	rows, err = repo.UpdateStatus(f.db, appt.ID, entity.AppointmentStatusPending, entity.AppointmentStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	var stored entity.Appointment
	require.NoError(t, f.db.First(&stored, "id = ?", appt.ID).Error)
	assert.Equal(t, entity.AppointmentStatusConfirmed, stored.Status)
}

func TestUpdateStatusOwnership(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_ownership")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	other := createVerifiedTherapist(t, f.db, "other@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)
	admin := createTestUser(t, f.db, "admin@example.com", entity.RoleAdmin)

	appt, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)

	_, err = f.usecase.UpdateStatus(ctx, other.ID, entity.RoleTherapist, appt.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "CONFIRMED"})
	assert.ErrorIs(t, err, ErrNotAssignedTherapist)

	// Admin may act on any appointment.
	_, err = f.usecase.UpdateStatus(ctx, admin.ID, entity.RoleAdmin, appt.ID,
		&dto.UpdateAppointmentStatusRequest{Status: "CONFIRMED"})
	assert.NoError(t, err)
}

func TestGetMyAppointmentsByRole(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_my_list")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	alice := createTestUser(t, f.db, "alice@example.com", entity.RolePatient)
	bob := createTestUser(t, f.db, "bob@example.com", entity.RolePatient)

	_, err := f.usecase.BookAppointment(ctx, alice.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)
	_, err = f.usecase.BookAppointment(ctx, bob.ID, bookRequest(therapist.ID, "2026-09-02T10:00:00Z", 60))
	require.NoError(t, err)

	aliceList, err := f.usecase.GetMyAppointments(ctx, alice.ID, entity.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, 1, aliceList.Total)

	therapistList, err := f.usecase.GetMyAppointments(ctx, therapist.ID, entity.RoleTherapist)
	require.NoError(t, err)
	assert.Equal(t, 2, therapistList.Total)
}

func TestGetAppointmentDetailsAccessControl(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_details_access")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)
	stranger := createTestUser(t, f.db, "stranger@example.com", entity.RolePatient)
	admin := createTestUser(t, f.db, "admin@example.com", entity.RoleAdmin)

	appt, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T10:00:00Z", 60))
	require.NoError(t, err)

	_, err = f.usecase.GetAppointmentDetails(ctx, patient.ID, entity.RolePatient, appt.ID)
	assert.NoError(t, err)
	_, err = f.usecase.GetAppointmentDetails(ctx, therapist.ID, entity.RoleTherapist, appt.ID)
	assert.NoError(t, err)
	_, err = f.usecase.GetAppointmentDetails(ctx, admin.ID, entity.RoleAdmin, appt.ID)
	assert.NoError(t, err)

	_, err = f.usecase.GetAppointmentDetails(ctx, stranger.ID, entity.RolePatient, appt.ID)
	assert.ErrorIs(t, err, ErrNotAppointmentParty)

	_, err = f.usecase.GetAppointmentDetails(ctx, patient.ID, entity.RolePatient, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestBookAppointmentStoresUTC(t *testing.T) {
	f := newAppointmentFixture(t, "appointment_utc")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	resp, err := f.usecase.BookAppointment(ctx, patient.ID, bookRequest(therapist.ID, "2026-09-01T12:00:00+02:00", 60))
	require.NoError(t, err)

	expected := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, resp.DateTime.Equal(expected), "got %s", resp.DateTime)
}
