package usecase

import (
	"context"
	"testing"

	"therapy-booking/internal/delivery/dto"
	"therapy-booking/internal/domain/entity"
	"therapy-booking/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type therapistFixture struct {
	usecase TherapistUsecase
	db      *gorm.DB
}

func newTherapistFixture(t *testing.T, name string) *therapistFixture {
	t.Helper()

	db := newTestDB(t, name)
	uc := NewTherapistUsecase(
		db,
		newTestLogger(),
		repository.NewTherapistProfileRepository(),
		repository.NewAvailabilityRepository(),
		repository.NewReviewRepository(),
		newTestAuditService(db),
	)
	return &therapistFixture{usecase: uc, db: db}
}

func addReview(t *testing.T, db *gorm.DB, therapistID, patientID uuid.UUID, rating int) {
	t.Helper()
	require.NoError(t, db.Create(&entity.Review{
		TherapistID: therapistID,
		PatientID:   patientID,
		Rating:      rating,
	}).Error)
}

func TestListTherapistsOnlyVerifiedAndUnblocked(t *testing.T) {
	f := newTherapistFixture(t, "therapist_list_visibility")
	ctx := context.Background()

	verified := createVerifiedTherapist(t, f.db, "verified@example.com", "80")

	pending := createTestUser(t, f.db, "pending@example.com", entity.RoleTherapist)
	require.NoError(t, f.db.Create(&entity.TherapistProfile{
		UserID:     pending.ID,
		HourlyRate: decimal.NewFromInt(50),
		Status:     entity.VerificationPending,
	}).Error)

	blocked := createVerifiedTherapist(t, f.db, "blocked@example.com", "60")
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", blocked.ID).Update("is_blocked", true).Error)

	list, err := f.usecase.ListTherapists(ctx, &entity.TherapistFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, verified.ID, list.Therapists[0].UserID)
}

func TestListTherapistsSpecializationFilter(t *testing.T) {
	f := newTherapistFixture(t, "therapist_list_specialization")
	ctx := context.Background()

	anxiety := createVerifiedTherapist(t, f.db, "anxiety@example.com", "80")
	other := createVerifiedTherapist(t, f.db, "cbt@example.com", "80")
	require.NoError(t, f.db.Model(&entity.TherapistProfile{}).
		Where("user_id = ?", other.ID).
		Update("specialization", entity.StringList{"cbt"}).Error)

	list, err := f.usecase.ListTherapists(ctx, &entity.TherapistFilter{Specialization: "anxiety"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, anxiety.ID, list.Therapists[0].UserID)
}

func TestListTherapistsMinRatingExcludesUnreviewed(t *testing.T) {
	f := newTherapistFixture(t, "therapist_list_min_rating")
	ctx := context.Background()

	rated := createVerifiedTherapist(t, f.db, "rated@example.com", "80")
	unrated := createVerifiedTherapist(t, f.db, "unrated@example.com", "80")
	lowRated := createVerifiedTherapist(t, f.db, "low@example.com", "80")

	patient := createTestUser(t, f.db, "patient@example.com", entity.RolePatient)
	addReview(t, f.db, rated.ID, patient.ID, 5)
	addReview(t, f.db, lowRated.ID, patient.ID, 2)
	_ = unrated

	minRating := 4.0
	list, err := f.usecase.ListTherapists(ctx, &entity.TherapistFilter{MinRating: &minRating})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, rated.ID, list.Therapists[0].UserID)
}

func TestListTherapistsMaxPriceFilter(t *testing.T) {
	f := newTherapistFixture(t, "therapist_list_max_price")
	ctx := context.Background()

	cheap := createVerifiedTherapist(t, f.db, "cheap@example.com", "50")
	createVerifiedTherapist(t, f.db, "expensive@example.com", "200")

	maxPrice := decimal.NewFromInt(100)
	list, err := f.usecase.ListTherapists(ctx, &entity.TherapistFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, cheap.ID, list.Therapists[0].UserID)
}

func TestGetTherapistHidesUnverified(t *testing.T) {
	f := newTherapistFixture(t, "therapist_get_hidden")
	ctx := context.Background()

	pending := createTestUser(t, f.db, "pending@example.com", entity.RoleTherapist)
	require.NoError(t, f.db.Create(&entity.TherapistProfile{
		UserID:     pending.ID,
		HourlyRate: decimal.NewFromInt(50),
		Status:     entity.VerificationPending,
	}).Error)

	_, err := f.usecase.GetTherapist(ctx, pending.ID)
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	_, err = f.usecase.GetTherapist(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestGetTherapistIncludesRatingAndReviews(t *testing.T) {
	f := newTherapistFixture(t, "therapist_get_details")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)
	addReview(t, f.db, therapist.ID, patient.ID, 5)
	addReview(t, f.db, therapist.ID, patient.ID, 3)

	resp, err := f.usecase.GetTherapist(ctx, therapist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalReviews)
	assert.InDelta(t, 4.0, resp.AverageRating, 1e-9)
	assert.Len(t, resp.Reviews, 2)
}

func TestUpdateProfilePartialUpdate(t *testing.T) {
	f := newTherapistFixture(t, "therapist_update_partial")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")

	bio := "Cognitive behavioural therapy, 10 years in practice"
	resp, err := f.usecase.UpdateProfile(ctx, therapist.ID, &dto.UpdateTherapistProfileRequest{
		Bio: &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, bio, resp.Bio)
	// Untouched fields keep their stored values.
	assert.Equal(t, []string{"anxiety"}, resp.Specialization)
	assert.True(t, resp.HourlyRate.Equal(decimal.NewFromInt(80)))
}

func TestUpdateProfileRejectsNegativeRate(t *testing.T) {
	f := newTherapistFixture(t, "therapist_update_negative")
	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")

	rate := decimal.NewFromInt(-10)
	_, err := f.usecase.UpdateProfile(context.Background(), therapist.ID, &dto.UpdateTherapistProfileRequest{
		HourlyRate: &rate,
	})
	assert.ErrorIs(t, err, ErrNegativeRate)
}

func TestSetAvailabilityReplacesSchedule(t *testing.T) {
	f := newTherapistFixture(t, "therapist_availability_replace")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")

	first, err := f.usecase.SetAvailability(ctx, therapist.ID, &dto.SetAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total)

	second, err := f.usecase.SetAvailability(ctx, therapist.ID, &dto.SetAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{
			{DayOfWeek: 5, StartTime: "14:00", EndTime: "18:00", IsAvailable: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Total)

	var count int64
	require.NoError(t, f.db.Model(&entity.Availability{}).
		Where("therapist_id = ?", therapist.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetAvailabilityUnknownTherapist(t *testing.T) {
	f := newTherapistFixture(t, "therapist_availability_unknown")

	_, err := f.usecase.SetAvailability(context.Background(), uuid.New(), &dto.SetAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		},
	})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestCreateReview(t *testing.T) {
	f := newTherapistFixture(t, "therapist_create_review")
	ctx := context.Background()

	therapist := createVerifiedTherapist(t, f.db, "t@example.com", "80")
	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	review, err := f.usecase.CreateReview(ctx, patient.ID, therapist.ID, &dto.CreateReviewRequest{
		Rating:  5,
		Comment: "Very helpful",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.NotZero(t, review.ID)

	_, err = f.usecase.CreateReview(ctx, patient.ID, uuid.New(), &dto.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestCreateReviewRequiresListableTherapist(t *testing.T) {
	f := newTherapistFixture(t, "therapist_create_review_hidden")
	ctx := context.Background()

	patient := createTestUser(t, f.db, "p@example.com", entity.RolePatient)

	pending := createTestUser(t, f.db, "pending@example.com", entity.RoleTherapist)
	require.NoError(t, f.db.Create(&entity.TherapistProfile{
		UserID:     pending.ID,
		HourlyRate: decimal.NewFromInt(50),
		Status:     entity.VerificationPending,
	}).Error)

	_, err := f.usecase.CreateReview(ctx, patient.ID, pending.ID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	blocked := createVerifiedTherapist(t, f.db, "blocked@example.com", "60")
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", blocked.ID).Update("is_blocked", true).Error)

	_, err = f.usecase.CreateReview(ctx, patient.ID, blocked.ID, &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	// No review row may exist for either therapist.
	var count int64
	require.NoError(t, f.db.Model(&entity.Review{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
